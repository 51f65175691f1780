package distance

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDistanceProviderQuery(t *testing.T) {
	p := NewStaticDistanceProvider([]StaticPair{{From: "A", To: "B", Meters: 1000, Seconds: 60}})

	s, err := p.Query(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.True(t, s.Available)
	assert.Equal(t, 1000, s.DistanceMeters)

	s, err = p.Query(context.Background(), "B", "A")
	require.NoError(t, err)
	assert.False(t, s.Available, "pairs are directed")

	assert.Equal(t, []StaticCall{{"A", "B"}, {"B", "A"}}, p.Calls())
}

func TestLoadStaticDistanceProviderSymmetric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distances.yaml")
	yml := `
symmetric: true
pairs:
  - {from: Quito, to: Ibarra, meters: 115000, seconds: 7800}
  - {from: Quito, to: Loja, meters: 640000, seconds: 36000}
  - {from: Loja, to: Quito, meters: 650000, seconds: 37000}
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	p, err := LoadStaticDistanceProvider(path)
	require.NoError(t, err)

	s, err := p.Query(context.Background(), "Ibarra", "Quito")
	require.NoError(t, err)
	assert.True(t, s.Available)
	assert.Equal(t, 115000, s.DistanceMeters)

	// An explicit reverse entry wins over the mirrored one.
	s, err = p.Query(context.Background(), "Loja", "Quito")
	require.NoError(t, err)
	assert.Equal(t, 650000, s.DistanceMeters)
}

func TestLoadStaticDistanceProviderInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pairs:\n  - {from: Quito, meters: 1}\n"), 0o644))
	_, err := LoadStaticDistanceProvider(bad)
	assert.Error(t, err)

	_, err = LoadStaticDistanceProvider(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
