package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/dinerozz/parts-analytics-backend/internal/analytics"
	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/dinerozz/parts-analytics-backend/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// catalogJoin holds the display data fetched for one report.
type catalogJoin struct {
	products   map[string]entity.ProductInfo
	categories map[string]entity.CategoryInfo
	units      map[string]entity.UnitInfo
}

// joinCatalog resolves every ranked product and unit with one bulk query per table.
// Products and units are independent; categories depend on the products' category ids.
func (s *analyticsService) joinCatalog(ctx context.Context, productCounts map[string]analytics.RankedEntry, units []analytics.RankedEntry) (*catalogJoin, error) {
	join := &catalogJoin{
		products:   make(map[string]entity.ProductInfo),
		categories: make(map[string]entity.CategoryInfo),
		units:      make(map[string]entity.UnitInfo),
	}

	productIDs := sortedKeys(productCounts)
	unitIDs := make([]string, 0, len(units))
	for _, u := range units {
		unitIDs = append(unitIDs, u.Key)
	}

	var (
		products  []entity.ProductInfo
		unitInfos []entity.UnitInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.catalog.ProductsByIDs(gctx, productIDs)
		return err
	})
	g.Go(func() error {
		var err error
		unitInfos, err = s.catalog.UnitsByIDs(gctx, unitIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: failed to load catalog: %w", entity.ErrStorageUnavailable, err)
	}

	categoryIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, p := range products {
		join.products[p.ID] = p
		if p.CategoryID == nil || *p.CategoryID == "" {
			continue
		}
		if _, ok := seen[*p.CategoryID]; !ok {
			seen[*p.CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}
	for _, u := range unitInfos {
		join.units[u.ID] = u
	}

	categories, err := s.catalog.CategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load categories: %w", entity.ErrStorageUnavailable, err)
	}
	for _, c := range categories {
		join.categories[c.ID] = c
	}

	return join, nil
}

// productCategories is the entity->category map the rollup consumes.
func (j *catalogJoin) productCategories() map[string]string {
	m := make(map[string]string, len(j.products))
	for id, p := range j.products {
		if p.CategoryID != nil && *p.CategoryID != "" {
			m[id] = *p.CategoryID
		}
	}
	return m
}

// topProducts keeps products missing from the catalog, named by their id.
func (j *catalogJoin) topProducts(entries []analytics.RankedEntry) []entity.TopProduct {
	out := make([]entity.TopProduct, 0, len(entries))
	for _, e := range entries {
		tp := entity.TopProduct{
			ProductID: e.Key,
			Name:      e.Key,
			Views:     e.Views,
			Clicks:    e.Clicks,
			CTR:       e.CTR(),
		}
		if p, ok := j.products[e.Key]; ok {
			tp.Name = p.Name
			tp.ImageURL = p.ImageURL
			tp.Price = p.Price
			tp.CategoryID = p.CategoryID
			if p.CategoryID != nil {
				tp.CategoryName = j.categories[*p.CategoryID].Name
			}
		}
		out = append(out, tp)
	}
	return out
}

func (j *catalogJoin) topCategories(rollup []analytics.CategoryMetrics, n int) []entity.TopCategory {
	if n > len(rollup) {
		n = len(rollup)
	}
	out := make([]entity.TopCategory, 0, n)
	for _, c := range rollup[:n] {
		name := c.CategoryID
		if info, ok := j.categories[c.CategoryID]; ok {
			name = info.Name
		}
		out = append(out, entity.TopCategory{
			CategoryID: c.CategoryID,
			Name:       name,
			Views:      c.Views,
			Clicks:     c.Clicks,
			Products:   c.Entities,
			CTR:        utils.Percentage(c.Clicks, c.Views),
		})
	}
	return out
}

func (j *catalogJoin) topUnits(entries []analytics.RankedEntry) []entity.TopUnit {
	out := make([]entity.TopUnit, 0, len(entries))
	for _, e := range entries {
		name := e.Key
		if u, ok := j.units[e.Key]; ok {
			name = u.Name
		}
		out = append(out, entity.TopUnit{UnitID: e.Key, Name: name, Views: e.Views, Clicks: e.Clicks})
	}
	return out
}

func sortedKeys(m map[string]analytics.RankedEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
