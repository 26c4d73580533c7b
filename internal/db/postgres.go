package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myfolio/server/internal/config"
)

// Sentinel errors returned by the repositories; handlers switch on these to
// pick the response status.
var (
	ErrNotFound          = errors.New("db: entity does not exist")
	ErrDuplicateEmail    = errors.New("db: email already exists")
	ErrDuplicateUsername = errors.New("db: username already exists")
)

type Postgres struct {
	Pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, cfg config.PostgresConfig) (*Postgres, error) {
	dsn := cfg.BuildDSN()
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns >= 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}

func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.Pool.Ping(ctx)
}

// EnsureSchema creates the tables when they are absent. Duplicate emails and
// usernames are rejected by the named unique constraints; the repositories
// translate those violations instead of pre-checking.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	statements := []string{
		strings.Join([]string{
			"CREATE TABLE IF NOT EXISTS users (",
			"    id BIGSERIAL PRIMARY KEY,",
			"    email TEXT NOT NULL,",
			"    username TEXT NOT NULL,",
			"    salt BYTEA NOT NULL,",
			"    hashed_password BYTEA NOT NULL,",
			"    CONSTRAINT uq_users_email UNIQUE (email),",
			"    CONSTRAINT uq_users_username UNIQUE (username)",
			")",
		}, "\n"),
		strings.Join([]string{
			"CREATE TABLE IF NOT EXISTS templates (",
			"    id BIGSERIAL PRIMARY KEY,",
			"    type TEXT NOT NULL,",
			"    title TEXT NOT NULL,",
			"    content TEXT NOT NULL,",
			"    likes INTEGER NOT NULL DEFAULT 0,",
			"    created_at TIMESTAMPTZ(6) NOT NULL DEFAULT NOW(),",
			"    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE",
			")",
		}, "\n"),
		strings.Join([]string{
			// base_template_id carries no foreign key: the folio keeps a
			// snapshot, so deleting the template must not touch it.
			"CREATE TABLE IF NOT EXISTS folios (",
			"    id BIGSERIAL PRIMARY KEY,",
			"    type TEXT NOT NULL,",
			"    title TEXT NOT NULL,",
			"    author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,",
			"    base_template_id BIGINT NOT NULL,",
			"    base_template_content TEXT NOT NULL,",
			"    base_template_fetched_at TIMESTAMPTZ(6) NOT NULL DEFAULT NOW(),",
			"    user_input_data TEXT NOT NULL DEFAULT '{}',",
			"    last_modified TIMESTAMPTZ(6) NOT NULL DEFAULT NOW()",
			")",
		}, "\n"),
		"CREATE INDEX IF NOT EXISTS idx_templates_user ON templates (user_id, created_at DESC, id DESC)",
		"CREATE INDEX IF NOT EXISTS idx_folios_author ON folios (author_id, last_modified DESC, id DESC)",
	}

	for _, stmt := range statements {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}

	return nil
}
