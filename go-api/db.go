package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openGormIPv4 opens a gorm handle over pgx with an IPv4-only dialer
// (some hosts resolve the DB hostname to an unroutable IPv6 address).
func openGormIPv4(dsn string, gLogger gormlogger.Interface) (*gorm.DB, *sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, nil, err
	}
	cfg.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		d := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
		// Force IPv4
		return d.DialContext(ctx, "tcp4", addr)
	}

	sqlDB := stdlib.OpenDB(*cfg)

	// Modest pool: every request is a short independent unit of work.
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Fast fail if unreachable
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gLogger,
	})
	if err != nil {
		return nil, nil, err
	}
	return gdb, sqlDB, nil
}

// AutoMigrate all app tables.
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&StudySession{},
		&UserStats{},
		&BreakOption{},
	)
}
