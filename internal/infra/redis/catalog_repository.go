package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"gearmatch/internal/domain"
	"gearmatch/internal/infra/memory"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CatalogRepository caches product catalogs in Redis (one JSON blob per
// category) and falls back to a loader on cache miss.
// Catalogs are stored as: SET catalog:{category} {json array}
type CatalogRepository struct {
	client *redis.Client
	loader memory.CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader memory.CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) Products(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	key := r.key(category)

	if products, ok := r.fromCache(ctx, key); ok {
		return products, nil
	}

	result, err, _ := r.sf.Do(string(category), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if products, ok := r.fromCache(ctx, key); ok {
			return products, nil
		}

		products, err := r.loader.LoadCatalog(ctx, category)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(products); err == nil {
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Product), nil
}

func (r *CatalogRepository) fromCache(ctx context.Context, key string) ([]domain.Product, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (r *CatalogRepository) key(category domain.Category) string {
	return "catalog:" + string(category)
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
