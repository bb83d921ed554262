package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adyen/swaglabs/internal/config"
	_ "github.com/lib/pq"
)

// DB is the order store used by the replica shop once Connect succeeds
var DB *sql.DB

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// Open connects to PostgreSQL and pings it. Extra settings are appended to
// the connection string as key=value pairs, e.g. "search_path=orders".
func Open(cfg *config.PostgresConfig, settings ...string) (*sql.DB, error) {
	connStr := strings.Join(append([]string{cfg.ConnectionString()}, settings...), " ")

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	return db, nil
}

// Connect opens DB from the POSTGRES_* environment variables
func Connect() error {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("failed to load postgres config: %w", err)
	}

	db, err := Open(pgConfig)
	if err != nil {
		return err
	}
	DB = db

	return nil
}

// Close releases DB, if open
func Close() error {
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}
