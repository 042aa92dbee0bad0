// Package storage persists brand contexts in Postgres.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopify-insights/internal/types"
)

// ErrBrandNotFound is returned by Get when no row exists for a website
var ErrBrandNotFound = errors.New("brand not found")

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// BrandStoreConfig controls the Postgres connection pool used for brand rows.
type BrandStoreConfig struct {
	DSN             string
	Table           string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

type pool interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Close()
}

// BrandStore keeps the latest brand context per website origin.
type BrandStore struct {
	pool  pool
	table string
}

// NewBrandStore connects to Postgres using the provided config.
func NewBrandStore(ctx context.Context, cfg BrandStoreConfig) (*BrandStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	store, err := NewBrandStoreWithPool(p, cfg.Table)
	if err != nil {
		p.Close()
		return nil, err
	}
	return store, nil
}

// NewBrandStoreWithPool constructs a store from an existing pool (primarily for testing).
func NewBrandStoreWithPool(p pool, table string) (*BrandStore, error) {
	if p == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if table == "" {
		table = "brands"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &BrandStore{pool: p, table: table}, nil
}

// EnsureSchema creates the brand table when it does not exist yet.
func (s *BrandStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	website TEXT NOT NULL UNIQUE,
	platform TEXT NOT NULL,
	payload JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, s.table)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s table: %w", s.table, err)
	}
	return nil
}

// Save upserts the brand context keyed by its website origin.
func (s *BrandStore) Save(ctx context.Context, brand *types.BrandContext) error {
	if brand == nil || brand.Website == "" {
		return fmt.Errorf("brand website is required")
	}
	payload, err := json.Marshal(brand)
	if err != nil {
		return fmt.Errorf("marshal brand: %w", err)
	}
	query := fmt.Sprintf(`
INSERT INTO %s (id, website, platform, payload, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (website) DO UPDATE SET
	platform = EXCLUDED.platform,
	payload = EXCLUDED.payload,
	updated_at = now()`, s.table)

	if _, err := s.pool.Exec(ctx, query, uuid.New(), brand.Website, brand.DetectedPlatform, payload); err != nil {
		return fmt.Errorf("upsert brand: %w", err)
	}
	return nil
}

// Get loads the stored brand context of a website origin.
func (s *BrandStore) Get(ctx context.Context, website string) (*types.BrandContext, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE website = $1`, s.table)

	var payload []byte
	if err := s.pool.QueryRow(ctx, query, website).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("select brand: %w", err)
	}

	var brand types.BrandContext
	if err := json.Unmarshal(payload, &brand); err != nil {
		return nil, fmt.Errorf("decode brand: %w", err)
	}
	return &brand, nil
}

// Close releases the underlying pool resources.
func (s *BrandStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}
