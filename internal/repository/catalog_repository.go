package repository

import (
	"context"
	"fmt"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CatalogRepository reads display data for ranked entities. Every method is a single
// bulk lookup; ids that do not exist are simply absent from the result.
type CatalogRepository interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]entity.ProductInfo, error)
	CategoriesByIDs(ctx context.Context, ids []string) ([]entity.CategoryInfo, error)
	UnitsByIDs(ctx context.Context, ids []string) ([]entity.UnitInfo, error)
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ProductsByIDs(ctx context.Context, ids []string) ([]entity.ProductInfo, error) {
	products := []entity.ProductInfo{}
	if len(ids) == 0 {
		return products, nil
	}

	query := `
		SELECT id::text AS id, name, image_url, price, category_id::text AS category_id
		FROM products
		WHERE id::text = ANY($1)`

	if err := r.db.SelectContext(ctx, &products, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) CategoriesByIDs(ctx context.Context, ids []string) ([]entity.CategoryInfo, error) {
	categories := []entity.CategoryInfo{}
	if len(ids) == 0 {
		return categories, nil
	}

	query := `SELECT id::text AS id, name FROM categories WHERE id::text = ANY($1)`

	if err := r.db.SelectContext(ctx, &categories, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

func (r *catalogRepository) UnitsByIDs(ctx context.Context, ids []string) ([]entity.UnitInfo, error) {
	units := []entity.UnitInfo{}
	if len(ids) == 0 {
		return units, nil
	}

	query := `SELECT id::text AS id, name FROM units WHERE id::text = ANY($1)`

	if err := r.db.SelectContext(ctx, &units, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get units: %w", err)
	}

	return units, nil
}
