package domain

import (
	"time"
)

// Ref is a lightweight id/name pair used when a listing embeds a related
// row (a product's brand, a variant's size) without expanding it fully.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Brand represents a paint brand. Brand listings embed the brand's
// sub-brands, so any sub-brand write makes a cached brand listing stale.
type Brand struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    Status     `json:"status"`
	SubBrands []SubBrand `json:"sub_brands"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SubBrand belongs to exactly one Brand.
type SubBrand struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category represents a product category. ProductsCount is derived at read
// time from the products referencing the category.
type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Status        Status    `json:"status"`
	ProductsCount int       `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Size is a catalog-wide size option referenced by product variants.
type Size struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product references at most one brand, sub-brand and category, each
// optional. A sub-brand is only meaningful under its parent brand; changing
// the brand clears the sub-brand.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	BrandID     *string   `json:"brand_id,omitempty"`
	SubBrandID  *string   `json:"sub_brand_id,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Status      Status    `json:"status"`
	Brand       *Ref      `json:"brand,omitempty"`
	SubBrand    *Ref      `json:"sub_brand,omitempty"`
	Category    *Ref      `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductVariant is a sellable variation of a product (size/color). SKU is
// unique across the catalog; the database constraint is the enforcement
// point, the generator in internal/catalog is only a convenience.
type ProductVariant struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	SizeID    *string   `json:"size_id,omitempty"`
	Color     *string   `json:"color,omitempty"`
	SKU       string    `json:"sku"`
	Status    Status    `json:"status"`
	Size      *Ref      `json:"size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
