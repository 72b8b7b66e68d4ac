package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"hia/internal/config"
)

const connectTimeout = 5 * time.Second

// NewDB opens a PostgreSQL connection pool and verifies it with a bounded
// ping, so a bad DSN fails at startup rather than on the first request.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.NewDB: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres.NewDB ping: %w", err)
	}

	log.Printf("connected to postgres %s:%d/%s (max_open=%d max_idle=%d)",
		cfg.Host, cfg.Port, cfg.Name, cfg.MaxOpen, cfg.MaxIdle)
	return db, nil
}
