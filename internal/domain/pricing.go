package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pricelist is a named price schedule. Each customer is assigned at most
// one; each product variant may carry one price entry per pricelist.
type Pricelist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PriceEntry binds one variant to one pricelist with a decimal price.
// Price entries carry no status column and are the only rows managed by
// upsert rather than create/update/archive.
type PriceEntry struct {
	ID          string          `json:"id"`
	PricelistID string          `json:"pricelist_id"`
	VariantID   string          `json:"variant_id"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CustomerProduct is one row of the customer-facing catalog: an active
// product with its active variants priced against the customer's pricelist.
type CustomerProduct struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	ImageURL    *string           `json:"image_url,omitempty"`
	Brand       *Ref              `json:"brand,omitempty"`
	SubBrand    *Ref              `json:"sub_brand,omitempty"`
	Category    *Ref              `json:"category,omitempty"`
	Variants    []CustomerVariant `json:"variants"`
}

// CustomerVariant carries the resolved price for the customer's pricelist.
// A nil Price means no entry exists for (variant, pricelist): the variant is
// still listed, with PriceAvailable false. It is never rendered as zero.
type CustomerVariant struct {
	ID             string           `json:"id"`
	SKU            string           `json:"sku"`
	Color          *string          `json:"color,omitempty"`
	Size           *Ref             `json:"size,omitempty"`
	Price          *decimal.Decimal `json:"price"`
	PriceAvailable bool             `json:"price_available"`
}
