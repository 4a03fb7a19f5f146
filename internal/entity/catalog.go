// entity/catalog.go
package entity

// ProductInfo is the display data joined onto ranked products.
type ProductInfo struct {
	ID         string   `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	ImageURL   *string  `json:"image_url" db:"image_url"`
	Price      *float64 `json:"price" db:"price"`
	CategoryID *string  `json:"category_id" db:"category_id"`
}

type CategoryInfo struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type UnitInfo struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
