package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config selects the SQL backend that holds saves
type Config struct {
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
	LogMode bool   `yaml:"log_mode"`
}

// DefaultConfig stores saves in a sqlite file next to the binary
func DefaultConfig() Config {
	return Config{Driver: DriverSQLite, DSN: "thepass.db"}
}

// Open connects to the configured database
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.LogMode(cfg.LogMode)

	if cfg.Driver == DriverSQLite {
		// every sqlite connection to :memory: is its own database
		db.DB().SetMaxOpenConns(1)
	} else {
		db.DB().SetMaxIdleConns(10)
		db.DB().SetMaxOpenConns(100)
	}
	db.DB().SetConnMaxLifetime(time.Hour)

	return db, nil
}
