package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dialect selects placeholder syntax for the two supported databases.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect accepts "sqlite" or "postgres" (also "pgx" / "postgresql").
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unknown database dialect %q", s)
}

func (d Dialect) bind(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Initialize the city catalog schema. The DDL is valid for SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS cities (
		city_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type seedFile struct {
	Cities []string `yaml:"cities" json:"cities"`
}

// LoadSeedFile reads city names from a YAML or JSON file of the form
// {"cities": [...]}. Files ending in .json are parsed as JSON.
func LoadSeedFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load city seed: read %q: %w", path, err)
	}

	var f seedFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &f)
	} else {
		err = yaml.Unmarshal(b, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("load city seed: parse %q: %w", path, err)
	}

	return f.Cities, nil
}

// SeedCities upserts names into the cities table; city_id follows list order from 1.
func SeedCities(ctx context.Context, db *sql.DB, dialect Dialect, names []string) error {
	if db == nil {
		return errors.New("seed cities: DB is nil")
	}

	rows := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return fmt.Errorf("seed cities: item at index %d: name cannot be empty", i+1)
		}
		if _, ok := seen[n]; ok {
			return fmt.Errorf("seed cities: duplicate name %q", n)
		}
		seen[n] = struct{}{}
		rows = append(rows, n)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed cities: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Replace the whole catalog so renamed entries do not trip the UNIQUE constraint.
	if _, err := tx.ExecContext(ctx, `DELETE FROM cities;`); err != nil {
		return fmt.Errorf("seed cities: clear table: %w", err)
	}

	query := fmt.Sprintf(`
	INSERT INTO cities (
		city_id,
		name
	)
	VALUES (%s, %s);
	`, dialect.bind(1), dialect.bind(2))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed cities: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range rows {
		if _, err := stmt.ExecContext(ctx, i+1, n); err != nil {
			return fmt.Errorf("seed cities: insert name=%q: %w", n, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed cities: commit tx: %w", err)
	}

	return nil
}
