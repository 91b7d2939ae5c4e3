package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/straye-as/offer-tracker/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open connects to the database selected by the storage mode
func Open(cfg *config.StorageConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Mode {
	case config.StorageModeSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	case config.StorageModePostgres:
		db, err = gorm.Open(postgres.Open(cfg.Database.ConnectionString()), gormCfg)
	default:
		return nil, fmt.Errorf("storage mode %s has no database", cfg.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Mode == config.StorageModePostgres {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetimeDuration())
	} else {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Dialect maps a storage mode to the goose dialect name
func Dialect(mode string) (string, error) {
	switch mode {
	case config.StorageModeSQLite:
		return "sqlite3", nil
	case config.StorageModePostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("storage mode %s has no database", mode)
	}
}

// Migrate applies the embedded migrations
func Migrate(ctx context.Context, db *sql.DB, mode string) error {
	dialect, err := Dialect(mode)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run up migrations: %w", err)
	}
	return nil
}

// RunCommand runs a goose command against the embedded migrations
func RunCommand(ctx context.Context, db *sql.DB, mode, command string) error {
	dialect, err := Dialect(mode)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(log.New(os.Stdout, "", 0))
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, "migrations")
	case "down":
		return goose.DownContext(ctx, db, "migrations")
	case "status":
		return goose.StatusContext(ctx, db, "migrations")
	case "version":
		return goose.VersionContext(ctx, db, "migrations")
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// HealthCheck pings the database behind a GORM handle
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
