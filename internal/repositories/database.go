package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
	"github.com/aaravmahajanofficial/catalog-admin/internal/utils"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB       *sql.DB
	Product  ProductRepository
	Category CategoryRepository
}

func New(cfg *config.Config) (*Repository, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(), otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := utils.WithDBTimeout(context.Background())
	defer cancel()

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return NewWithDB(db), nil
}

func NewWithDB(db *sql.DB) *Repository {
	return &Repository{
		DB:       db,
		Product:  NewProductRepo(db),
		Category: NewCategoryRepo(db),
	}
}

func (p *Repository) Close() error {
	return p.DB.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	category_id       TEXT NOT NULL REFERENCES categories(id),
	name              TEXT NOT NULL,
	description       TEXT NOT NULL,
	short_description TEXT NOT NULL DEFAULT '',
	sku               TEXT NOT NULL,
	brand             TEXT NOT NULL,
	price             NUMERIC(12,2) NOT NULL,
	compare_at_price  NUMERIC(12,2) NOT NULL DEFAULT 0,
	featured          BOOLEAN NOT NULL DEFAULT FALSE,
	status            TEXT NOT NULL DEFAULT 'active',
	tags              TEXT[] NOT NULL DEFAULT '{}',
	inventory         JSONB NOT NULL DEFAULT '{}',
	seo               JSONB NOT NULL DEFAULT '{}',
	images            JSONB NOT NULL DEFAULT '[]',
	specifications    JSONB NOT NULL DEFAULT '[]',
	compatibility     JSONB NOT NULL DEFAULT '[]',
	videos            JSONB NOT NULL DEFAULT '[]',
	ratings           JSONB NOT NULL DEFAULT '{}',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS products_category_id_idx ON products (category_id);
`

// EnsureSchema creates the tables on first start. Existing tables are left
// as they are.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
