package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/straye-as/offer-tracker/internal/config"
	"github.com/straye-as/offer-tracker/internal/database"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate [up|down|status|version]")
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := openDatabase(&cfg.Storage)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunCommand(context.Background(), db, cfg.Storage.Mode, command); err != nil {
		return fmt.Errorf("failed to run %s: %w", command, err)
	}

	fmt.Printf("Migration command %q completed\n", command)
	return nil
}

// openDatabase connects to the database behind the configured storage mode
func openDatabase(cfg *config.StorageConfig) (*sql.DB, error) {
	switch cfg.Mode {
	case config.StorageModePostgres:
		db, err := sql.Open("postgres", cfg.Database.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return db, nil
	case config.StorageModeSQLite:
		gormDB, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		return gormDB.DB()
	default:
		return nil, fmt.Errorf("storage mode %s has no database to migrate", cfg.Mode)
	}
}
