// Package database provides database connection management and utilities.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// Supported values for the DB_DRIVER setting.
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverMySQL    = "mysql"
)

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// Connect establishes a database connection with the given configuration.
func Connect(cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// IsPostgres reports whether driver speaks the PostgreSQL dialect.
// Both lib/pq ("postgres") and pgx ("pgx") share the same SQL and migrations.
func IsPostgres(driver string) bool {
	return driver == DriverPostgres || driver == DriverPgx
}

// IsMySQL reports whether driver speaks the MySQL dialect.
func IsMySQL(driver string) bool {
	return driver == DriverMySQL
}

// Now returns the current UTC time at the microsecond precision stored by both
// PostgreSQL TIMESTAMPTZ and MySQL DATETIME(6) columns.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
