package main

import (
	"city-route-service/internal/adapters/catalog"
	"city-route-service/internal/adapters/distance"
	"city-route-service/internal/adapters/repositories"
	"city-route-service/internal/api"
	"city-route-service/internal/config"
	"city-route-service/internal/platform/db"
	"city-route-service/internal/ports"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// main is the application composition root.
// It wires concrete adapters (Google or static distances, city catalog) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logFile := setupLogging(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups)
	if logFile != nil {
		defer logFile.Close()
	}

	provider, err := newProvider(cfg)
	if err != nil {
		log.Fatal(err)
	}

	cities, closeCatalog, err := newCatalog(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCatalog()

	router := api.NewRouter(api.RouterDeps{
		Provider:       distance.NewInstrumentedProvider(provider),
		Catalog:        cities,
		Logger:         log.Default(),
		MapsBrowserKey: cfg.MapsBrowserKey,
	})

	// Route construction issues O(n²) sequential lookups; the write timeout leaves room for that.
	log.Printf("Server listening addr=:%s provider=%s catalog=%s", cfg.Port, cfg.DistanceProvider, cfg.CatalogSource)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// setupLogging sends the standard logger to stderr and, when path is set, to
// a size-rotated file as well.
func setupLogging(path string, maxSizeMB, maxBackups int) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if path == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return rotator
}

func newProvider(cfg *config.Config) (ports.DistanceProvider, error) {
	switch cfg.DistanceProvider {
	case config.ProviderStatic:
		p, err := distance.LoadStaticDistanceProvider(cfg.StaticMatrixPath)
		if err != nil {
			return nil, fmt.Errorf("new provider: %w", err)
		}
		return p, nil
	default:
		p, err := distance.NewGoogleDistanceProvider(distance.GoogleOptions{
			APIKey:   cfg.GoogleMapsAPIKey,
			BaseURL:  cfg.MapsBaseURL,
			Region:   cfg.MapsRegion,
			Language: cfg.MapsLanguage,
			QPS:      cfg.MapsQPS,
			Timeout:  cfg.MapsTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("new provider: %w", err)
		}
		return p, nil
	}
}

// newCatalog returns the configured city catalog and a func releasing its resources.
func newCatalog(cfg *config.Config) (ports.CityCatalog, func(), error) {
	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)

	switch cfg.CatalogSource {
	case config.CatalogSQLite:
		conn, err = db.OpenSQLite(cfg.DBPath)
		dialect = repositories.DialectSQLite
	case config.CatalogPostgres:
		conn, err = db.Open(cfg.DatabaseURL)
		dialect = repositories.DialectPostgres
	default:
		return catalog.NewStatic(catalog.EcuadorCities), func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("new catalog: %w", err)
	}

	// SQLite runs are local: create and seed the catalog on startup when it is empty.
	if dialect == repositories.DialectSQLite {
		if err := ensureSeeded(conn, cfg.SeedPath); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("new catalog: %w", err)
		}
	}

	return repositories.NewSQLCityRepository(conn), func() { conn.Close() }, nil
}

func ensureSeeded(conn *sql.DB, seedPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}

	existing, err := repositories.NewSQLCityRepository(conn).ListCities(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	names := catalog.EcuadorCities
	if _, statErr := os.Stat(seedPath); statErr == nil {
		names, err = repositories.LoadSeedFile(seedPath)
		if err != nil {
			return err
		}
	}

	return repositories.SeedCities(ctx, conn, repositories.DialectSQLite, names)
}
