package main

import (
	"city-route-service/internal/adapters/catalog"
	"city-route-service/internal/adapters/repositories"
	"city-route-service/internal/config"
	"city-route-service/internal/platform/db"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type dbFlags struct {
	driver string
	dsn    string
}

func newRootCmd() *cobra.Command {
	flags := &dbFlags{}

	root := &cobra.Command{
		Use:           "dbtool",
		Short:         "Manage the city catalog database",
		Long:          "dbtool creates the cities table and loads the candidate city catalog into SQLite or Postgres.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&flags.driver, "driver", config.Get("DB_DRIVER", "sqlite"), "database driver: sqlite or postgres")
	root.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "database path (sqlite) or URL (postgres); defaults to DB_PATH / DATABASE_URL")

	root.AddCommand(newInitCmd(flags), newSeedCmd(flags))
	return root
}

func newInitCmd(flags *dbFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the catalog schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, _, err := flags.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			log.Println("Initializing database schema...")
			if err := repositories.InitSchema(cmd.Context(), conn); err != nil {
				return err
			}
			log.Println("Schema ready.")
			return nil
		},
	}
}

func newSeedCmd(flags *dbFlags) *cobra.Command {
	var seedPath string
	var builtin bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the city catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := catalog.EcuadorCities
			if !builtin {
				var err error
				names, err = repositories.LoadSeedFile(seedPath)
				if err != nil {
					return err
				}
			}
			if len(names) == 0 {
				return errors.New("seed: no cities to load")
			}

			conn, dialect, err := flags.open()
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := repositories.InitSchema(cmd.Context(), conn); err != nil {
				return err
			}

			log.Printf("Seeding database cities=%d...", len(names))
			if err := repositories.SeedCities(cmd.Context(), conn, dialect, names); err != nil {
				return err
			}
			log.Println("Seeding complete.")
			return nil
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", config.Get("SEED_PATH", "data/seeds/cities.yaml"), "YAML or JSON seed file")
	cmd.Flags().BoolVar(&builtin, "builtin", false, "load the built-in Ecuador city list instead of a seed file")
	return cmd
}

func (f *dbFlags) open() (*sql.DB, repositories.Dialect, error) {
	dialect, err := repositories.ParseDialect(f.driver)
	if err != nil {
		return nil, "", err
	}

	dsn := strings.TrimSpace(f.dsn)
	switch dialect {
	case repositories.DialectPostgres:
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return nil, "", errors.New("DATABASE_URL or --dsn is required for postgres")
		}
		conn, err := db.Open(dsn)
		if err != nil {
			return nil, "", err
		}
		return conn, dialect, nil
	default:
		if dsn == "" {
			dsn = config.Get("DB_PATH", "data/app.db")
		}
		conn, err := db.OpenSQLite(dsn)
		if err != nil {
			return nil, "", fmt.Errorf("open sqlite: %w", err)
		}
		return conn, dialect, nil
	}
}
