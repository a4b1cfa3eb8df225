package store

import (
	"context"

	"github.com/shopspring/decimal"

	"paint-catalog-service/internal/domain"
)

// ListParams holds the common listing filter. Status nil means unfiltered;
// archived rows are only excluded when the caller asks for active ones.
type ListParams struct {
	Status *domain.Status
}

// CatalogStorer defines the database operations for brands, sub-brands,
// categories and sizes. All "delete" operations are archives.
type CatalogStorer interface {
	CreateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	ListBrands(ctx context.Context, params ListParams) ([]domain.Brand, error)
	UpdateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	ArchiveBrand(ctx context.Context, id string) error

	CreateSubBrand(ctx context.Context, sb *domain.SubBrand) (*domain.SubBrand, error)
	ListSubBrands(ctx context.Context, brandID string, params ListParams) ([]domain.SubBrand, error)
	GetSubBrandByID(ctx context.Context, id string) (*domain.SubBrand, error)
	UpdateSubBrand(ctx context.Context, sb *domain.SubBrand) (*domain.SubBrand, error)
	ArchiveSubBrand(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	ListCategories(ctx context.Context, params ListParams) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	ArchiveCategory(ctx context.Context, id string) error

	CreateSize(ctx context.Context, size *domain.Size) (*domain.Size, error)
	ListSizes(ctx context.Context, params ListParams) ([]domain.Size, error)
	UpdateSize(ctx context.Context, size *domain.Size) (*domain.Size, error)
	ArchiveSize(ctx context.Context, id string) error
}

// ProductStorer defines the database operations for products and their
// variants.
type ProductStorer interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, params ListParams) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ArchiveProduct(ctx context.Context, id string) error

	CreateVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error)
	ListVariants(ctx context.Context, productID string, params ListParams) ([]domain.ProductVariant, error)
	UpdateVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error)
	ArchiveVariant(ctx context.Context, id string) error
}

// PricingStorer defines the database operations for pricelists, price
// entries and the customer-facing price resolution join.
type PricingStorer interface {
	CreatePricelist(ctx context.Context, pl *domain.Pricelist) (*domain.Pricelist, error)
	ListPricelists(ctx context.Context, params ListParams) ([]domain.Pricelist, error)
	UpdatePricelist(ctx context.Context, pl *domain.Pricelist) (*domain.Pricelist, error)
	ArchivePricelist(ctx context.Context, id string) error

	ListPriceEntries(ctx context.Context, pricelistID string) ([]domain.PriceEntry, error)
	UpsertPriceEntry(ctx context.Context, pricelistID, variantID string, price decimal.Decimal) (*domain.PriceEntry, error)

	// GetProductsForPricelist returns active products with their active
	// variants, each variant carrying the price entry for the given
	// pricelist when one exists. Variants without an entry are included
	// with no price.
	GetProductsForPricelist(ctx context.Context, pricelistID string) ([]domain.CustomerProduct, error)
}

// CustomerStorer defines the database operations for customer accounts.
type CustomerStorer interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params ListParams) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	ArchiveCustomer(ctx context.Context, id string) error
	GetCustomerByUserID(ctx context.Context, userID string) (*domain.Customer, error)
}

// IdentityStorer reads login identities. Identity creation is outside this
// service's write authority, so only lookups exist.
type IdentityStorer interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SystemStorer backs the admin dashboard and settings screens.
type SystemStorer interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
}
