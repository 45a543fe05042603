package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"gearmatch/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches a category's product list from a backing store
// (Postgres, bundled assets, etc).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context, category domain.Category) ([]domain.Product, error)
}

// CatalogRepository caches catalogs with TTL to avoid repeated store hits.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[domain.Category]cachedCatalog
}

type cachedCatalog struct {
	products  []domain.Product
	expiresAt time.Time
}

func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Category]cachedCatalog),
	}
}

func (r *CatalogRepository) Products(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[category]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.products, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(string(category), func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[category]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.products, nil
		}
		r.mu.RUnlock()

		products, err := r.loader.LoadCatalog(ctx, category)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[category] = cachedCatalog{
			products:  products,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Product), nil
}

// StaticCatalogLoader is a loader backed by an in-memory map (tests/demos).
type StaticCatalogLoader struct {
	catalogs map[domain.Category][]domain.Product
}

func NewStaticCatalogLoader(catalogs map[domain.Category][]domain.Product) *StaticCatalogLoader {
	return &StaticCatalogLoader{catalogs: catalogs}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context, category domain.Category) ([]domain.Product, error) {
	if products, ok := l.catalogs[category]; ok {
		return products, nil
	}
	return nil, domain.ErrCatalogNotFound
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
