package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gearmatch/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads product catalogs stored as JSONB in Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM product_catalogs WHERE category=$1`, string(category)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCatalogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return products, nil
}
