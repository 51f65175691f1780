package repositories

import (
	"city-route-service/internal/platform/db"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func TestSeedAndListCities(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	require.NoError(t, SeedCities(ctx, conn, DialectSQLite, []string{"Quito", " Guayaquil ", "Cuenca"}))

	cities, err := NewSQLCityRepository(conn).ListCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 3)

	assert.Equal(t, 1, cities[0].CityID)
	assert.Equal(t, "Quito", cities[0].Name)
	assert.Equal(t, "Guayaquil", cities[1].Name)
	assert.Equal(t, "Cuenca", cities[2].Name)
}

func TestSeedCitiesReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	require.NoError(t, SeedCities(ctx, conn, DialectSQLite, []string{"Quito", "Loja"}))
	require.NoError(t, SeedCities(ctx, conn, DialectSQLite, []string{"Loja"}))

	cities, err := NewSQLCityRepository(conn).ListCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Loja", cities[0].Name)
}

func TestSeedCitiesRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)

	assert.Error(t, SeedCities(ctx, conn, DialectSQLite, []string{"Quito", ""}))
	assert.Error(t, SeedCities(ctx, conn, DialectSQLite, []string{"Quito", "Quito"}))
	assert.Error(t, SeedCities(ctx, nil, DialectSQLite, []string{"Quito"}))
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "cities.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("cities:\n  - Quito\n  - Tena\n"), 0o644))
	names, err := LoadSeedFile(yml)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quito", "Tena"}, names)

	js := filepath.Join(dir, "cities.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"cities": ["Puyo", "Macas"]}`), 0o644))
	names, err = LoadSeedFile(js)
	require.NoError(t, err)
	assert.Equal(t, []string{"Puyo", "Macas"}, names)
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("PGX")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)
	assert.Equal(t, "$2", d.bind(2))

	d, err = ParseDialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "?", d.bind(1))

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}
