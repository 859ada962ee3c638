// Package database owns the process-wide connection pool. sqlx and gorm share the same
// *sql.DB so every statement acquires and releases through one bounded pool.
package database

import (
	"context"
	"fmt"

	"github.com/frahmantamala/office-management/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const driver = "pgx"

type DB struct {
	SQL  *sqlx.DB
	Gorm *gorm.DB
}

// Open connects to PostgreSQL, sizes the pool from cfg and verifies the connection.
func Open(cfg internal.DatabaseConfig) (*DB, error) {
	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: dbConn.DB}), GormConfig())
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to wrap pool with gorm: %w", err)
	}

	return &DB{SQL: dbConn, Gorm: gormDB}, nil
}

// GormConfig is shared with tests so duplicate keys translate the same way everywhere.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SQL.Close()
}
