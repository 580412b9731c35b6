package database

import (
	"context"
	"fmt"
	"time"

	"dochub-server/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

type PostgresDB struct {
	pool *pgxpool.Pool
	db   *sqlx.DB
}

func NewPostgresDB(cfg config.DatabaseConfig) (*PostgresDB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open sqlx connection: %w", err)
	}

	return &PostgresDB{pool: pool, db: db}, nil
}

func (p *PostgresDB) Pool() *pgxpool.Pool {
	return p.pool
}

// DB exposes the sqlx handle used by the document repository.
func (p *PostgresDB) DB() *sqlx.DB {
	return p.db
}

func (p *PostgresDB) Close() {
	p.db.Close()
	p.pool.Close()
}
