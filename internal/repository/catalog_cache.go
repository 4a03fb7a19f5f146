package repository

import (
	"context"
	"time"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const catalogCacheSize = 4096

// cachedCatalog fronts a CatalogRepository with per-id expiring LRU caches.
// Only hits are cached, so ids created after a miss show up on the next request.
type cachedCatalog struct {
	next       CatalogRepository
	products   *expirable.LRU[string, entity.ProductInfo]
	categories *expirable.LRU[string, entity.CategoryInfo]
	units      *expirable.LRU[string, entity.UnitInfo]
}

func NewCachedCatalogRepository(next CatalogRepository, ttl time.Duration) CatalogRepository {
	if ttl <= 0 {
		return next
	}

	return &cachedCatalog{
		next:       next,
		products:   expirable.NewLRU[string, entity.ProductInfo](catalogCacheSize, nil, ttl),
		categories: expirable.NewLRU[string, entity.CategoryInfo](catalogCacheSize, nil, ttl),
		units:      expirable.NewLRU[string, entity.UnitInfo](catalogCacheSize, nil, ttl),
	}
}

func (c *cachedCatalog) ProductsByIDs(ctx context.Context, ids []string) ([]entity.ProductInfo, error) {
	return lookupCached(ctx, ids, c.products, c.next.ProductsByIDs, func(p entity.ProductInfo) string { return p.ID })
}

func (c *cachedCatalog) CategoriesByIDs(ctx context.Context, ids []string) ([]entity.CategoryInfo, error) {
	return lookupCached(ctx, ids, c.categories, c.next.CategoriesByIDs, func(p entity.CategoryInfo) string { return p.ID })
}

func (c *cachedCatalog) UnitsByIDs(ctx context.Context, ids []string) ([]entity.UnitInfo, error) {
	return lookupCached(ctx, ids, c.units, c.next.UnitsByIDs, func(p entity.UnitInfo) string { return p.ID })
}

func lookupCached[T any](
	ctx context.Context,
	ids []string,
	cache *expirable.LRU[string, T],
	load func(context.Context, []string) ([]T, error),
	idOf func(T) string,
) ([]T, error) {
	result := make([]T, 0, len(ids))
	var missing []string

	for _, id := range ids {
		if v, ok := cache.Get(id); ok {
			result = append(result, v)
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := load(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, v := range loaded {
		cache.Add(idOf(v), v)
		result = append(result, v)
	}

	return result, nil
}
