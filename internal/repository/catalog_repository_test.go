package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
)

func TestCatalogRepository_ProductsByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_url", "price", "category_id"}).
			AddRow("p1", "Brake pad", "https://cdn/p1.jpg", 12.5, "c1").
			AddRow("p2", "Oil filter", nil, nil, nil))

	products, err := repo.ProductsByIDs(context.Background(), []string{"p1", "p2", "missing"})

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Brake pad", products[0].Name)
	assert.Equal(t, 12.5, *products[0].Price)
	assert.Equal(t, "c1", *products[0].CategoryID)
	assert.Nil(t, products[1].CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_EmptyIDsSkipQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	products, err := repo.ProductsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)

	units, err := repo.UnitsByIDs(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, units)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_CategoriesByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id::text = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("c1", "Brakes"))

	categories, err := repo.CategoriesByIDs(context.Background(), []string{"c1"})

	require.NoError(t, err)
	assert.Equal(t, []entity.CategoryInfo{{ID: "c1", Name: "Brakes"}}, categories)
}

type countingCatalog struct {
	calls    [][]string
	products map[string]entity.ProductInfo
}

func (c *countingCatalog) ProductsByIDs(_ context.Context, ids []string) ([]entity.ProductInfo, error) {
	c.calls = append(c.calls, ids)
	var out []entity.ProductInfo
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *countingCatalog) CategoriesByIDs(context.Context, []string) ([]entity.CategoryInfo, error) {
	return nil, nil
}

func (c *countingCatalog) UnitsByIDs(context.Context, []string) ([]entity.UnitInfo, error) {
	return nil, nil
}

func TestCachedCatalog_OnlyLoadsMisses(t *testing.T) {
	backing := &countingCatalog{products: map[string]entity.ProductInfo{
		"p1": {ID: "p1", Name: "Brake pad"},
		"p2": {ID: "p2", Name: "Oil filter"},
	}}
	repo := NewCachedCatalogRepository(backing, time.Minute)

	first, err := repo.ProductsByIDs(context.Background(), []string{"p1"})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := repo.ProductsByIDs(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.Len(t, second, 2)

	require.Len(t, backing.calls, 2)
	assert.Equal(t, []string{"p2", "p3"}, backing.calls[1])
}

func TestCachedCatalog_DisabledWithZeroTTL(t *testing.T) {
	backing := &countingCatalog{}

	assert.Same(t, backing, NewCachedCatalogRepository(backing, 0))
}
