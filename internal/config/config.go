package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderGoogle = "google"
	ProviderStatic = "static"

	CatalogStatic   = "static"
	CatalogSQLite   = "sqlite"
	CatalogPostgres = "postgres"
)

// Config holds runtime settings for the server binary.
type Config struct {
	Port string

	// Distance provider
	DistanceProvider string
	GoogleMapsAPIKey string
	MapsBaseURL      string
	MapsRegion       string
	MapsLanguage     string
	MapsQPS          float64
	MapsTimeout      time.Duration
	StaticMatrixPath string
	// Key embedded in the web page for the browser map; never the server key.
	MapsBrowserKey string

	// City catalog
	CatalogSource string
	DBPath        string
	DatabaseURL   string
	SeedPath      string

	// Rotation of LogFile: size in megabytes before rotating, rotated files kept.
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             Get("PORT", "8080"),
		DistanceProvider: strings.ToLower(Get("DISTANCE_PROVIDER", ProviderGoogle)),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		MapsBaseURL:      Get("MAPS_BASE_URL", "https://maps.googleapis.com"),
		MapsRegion:       Get("MAPS_REGION", "ec"),
		MapsLanguage:     Get("MAPS_LANGUAGE", "es"),
		MapsQPS:          GetFloat("MAPS_QPS", 10),
		MapsTimeout:      GetDuration("MAPS_TIMEOUT", 10*time.Second),
		StaticMatrixPath: Get("STATIC_MATRIX_PATH", "data/distances.yaml"),
		MapsBrowserKey:   os.Getenv("MAPS_BROWSER_KEY"),
		CatalogSource:    strings.ToLower(Get("CATALOG_SOURCE", CatalogStatic)),
		DBPath:           Get("DB_PATH", "data/app.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SeedPath:         Get("SEED_PATH", "data/seeds/cities.yaml"),
		LogFile:          os.Getenv("LOG_FILE"),
		LogMaxSizeMB:     GetInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups:    GetInt("LOG_MAX_BACKUPS", 3),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.DistanceProvider {
	case ProviderGoogle:
		if strings.TrimSpace(c.GoogleMapsAPIKey) == "" {
			return fmt.Errorf("GOOGLE_MAPS_API_KEY is required when DISTANCE_PROVIDER=%s", ProviderGoogle)
		}
	case ProviderStatic:
		if strings.TrimSpace(c.StaticMatrixPath) == "" {
			return fmt.Errorf("STATIC_MATRIX_PATH is required when DISTANCE_PROVIDER=%s", ProviderStatic)
		}
	default:
		return fmt.Errorf("DISTANCE_PROVIDER must be %q or %q, got %q", ProviderGoogle, ProviderStatic, c.DistanceProvider)
	}

	switch c.CatalogSource {
	case CatalogStatic, CatalogSQLite:
	case CatalogPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when CATALOG_SOURCE=%s", CatalogPostgres)
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be static, sqlite or postgres, got %q", c.CatalogSource)
	}

	if c.MapsQPS < 0 {
		return fmt.Errorf("MAPS_QPS must be >= 0, got %f", c.MapsQPS)
	}
	if c.MapsTimeout <= 0 {
		return fmt.Errorf("MAPS_TIMEOUT must be positive, got %v", c.MapsTimeout)
	}

	if c.LogMaxSizeMB <= 0 {
		return fmt.Errorf("LOG_MAX_SIZE_MB must be positive, got %d", c.LogMaxSizeMB)
	}
	if c.LogMaxBackups < 0 {
		return fmt.Errorf("LOG_MAX_BACKUPS must be >= 0, got %d", c.LogMaxBackups)
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
