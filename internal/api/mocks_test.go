package api

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"paint-catalog-service/internal/domain"
	"paint-catalog-service/internal/store"
)

// MockCatalogStorer is a mock implementation of store.CatalogStorer
type MockCatalogStorer struct {
	mock.Mock
}

func (m *MockCatalogStorer) CreateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *MockCatalogStorer) ListBrands(ctx context.Context, params store.ListParams) ([]domain.Brand, error) {
	args := m.Called(ctx, params)
	var brands []domain.Brand
	if arg0 := args.Get(0); arg0 != nil {
		brands = arg0.([]domain.Brand)
	}
	return brands, args.Error(1)
}

func (m *MockCatalogStorer) UpdateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *MockCatalogStorer) ArchiveBrand(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogStorer) CreateSubBrand(ctx context.Context, sb *domain.SubBrand) (*domain.SubBrand, error) {
	args := m.Called(ctx, sb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubBrand), args.Error(1)
}

func (m *MockCatalogStorer) ListSubBrands(ctx context.Context, brandID string, params store.ListParams) ([]domain.SubBrand, error) {
	args := m.Called(ctx, brandID, params)
	var subBrands []domain.SubBrand
	if arg0 := args.Get(0); arg0 != nil {
		subBrands = arg0.([]domain.SubBrand)
	}
	return subBrands, args.Error(1)
}

func (m *MockCatalogStorer) GetSubBrandByID(ctx context.Context, id string) (*domain.SubBrand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubBrand), args.Error(1)
}

func (m *MockCatalogStorer) UpdateSubBrand(ctx context.Context, sb *domain.SubBrand) (*domain.SubBrand, error) {
	args := m.Called(ctx, sb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubBrand), args.Error(1)
}

func (m *MockCatalogStorer) ArchiveSubBrand(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogStorer) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogStorer) ListCategories(ctx context.Context, params store.ListParams) ([]domain.Category, error) {
	args := m.Called(ctx, params)
	var categories []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockCatalogStorer) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogStorer) ArchiveCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogStorer) CreateSize(ctx context.Context, size *domain.Size) (*domain.Size, error) {
	args := m.Called(ctx, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Size), args.Error(1)
}

func (m *MockCatalogStorer) ListSizes(ctx context.Context, params store.ListParams) ([]domain.Size, error) {
	args := m.Called(ctx, params)
	var sizes []domain.Size
	if arg0 := args.Get(0); arg0 != nil {
		sizes = arg0.([]domain.Size)
	}
	return sizes, args.Error(1)
}

func (m *MockCatalogStorer) UpdateSize(ctx context.Context, size *domain.Size) (*domain.Size, error) {
	args := m.Called(ctx, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Size), args.Error(1)
}

func (m *MockCatalogStorer) ArchiveSize(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductStorer is a mock implementation of store.ProductStorer
type MockProductStorer struct {
	mock.Mock
}

func (m *MockProductStorer) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) ListProducts(ctx context.Context, params store.ListParams) ([]domain.Product, error) {
	args := m.Called(ctx, params)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductStorer) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) ArchiveProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductStorer) CreateVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error) {
	args := m.Called(ctx, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariant), args.Error(1)
}

func (m *MockProductStorer) ListVariants(ctx context.Context, productID string, params store.ListParams) ([]domain.ProductVariant, error) {
	args := m.Called(ctx, productID, params)
	var variants []domain.ProductVariant
	if arg0 := args.Get(0); arg0 != nil {
		variants = arg0.([]domain.ProductVariant)
	}
	return variants, args.Error(1)
}

func (m *MockProductStorer) UpdateVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error) {
	args := m.Called(ctx, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariant), args.Error(1)
}

func (m *MockProductStorer) ArchiveVariant(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPricingStorer is a mock implementation of store.PricingStorer
type MockPricingStorer struct {
	mock.Mock
}

func (m *MockPricingStorer) CreatePricelist(ctx context.Context, pl *domain.Pricelist) (*domain.Pricelist, error) {
	args := m.Called(ctx, pl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pricelist), args.Error(1)
}

func (m *MockPricingStorer) ListPricelists(ctx context.Context, params store.ListParams) ([]domain.Pricelist, error) {
	args := m.Called(ctx, params)
	var pricelists []domain.Pricelist
	if arg0 := args.Get(0); arg0 != nil {
		pricelists = arg0.([]domain.Pricelist)
	}
	return pricelists, args.Error(1)
}

func (m *MockPricingStorer) UpdatePricelist(ctx context.Context, pl *domain.Pricelist) (*domain.Pricelist, error) {
	args := m.Called(ctx, pl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pricelist), args.Error(1)
}

func (m *MockPricingStorer) ArchivePricelist(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPricingStorer) ListPriceEntries(ctx context.Context, pricelistID string) ([]domain.PriceEntry, error) {
	args := m.Called(ctx, pricelistID)
	var entries []domain.PriceEntry
	if arg0 := args.Get(0); arg0 != nil {
		entries = arg0.([]domain.PriceEntry)
	}
	return entries, args.Error(1)
}

func (m *MockPricingStorer) UpsertPriceEntry(ctx context.Context, pricelistID, variantID string, price decimal.Decimal) (*domain.PriceEntry, error) {
	args := m.Called(ctx, pricelistID, variantID, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceEntry), args.Error(1)
}

func (m *MockPricingStorer) GetProductsForPricelist(ctx context.Context, pricelistID string) ([]domain.CustomerProduct, error) {
	args := m.Called(ctx, pricelistID)
	var products []domain.CustomerProduct
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.CustomerProduct)
	}
	return products, args.Error(1)
}

// MockCustomerStorer is a mock implementation of store.CustomerStorer
type MockCustomerStorer struct {
	mock.Mock
}

func (m *MockCustomerStorer) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerStorer) ListCustomers(ctx context.Context, params store.ListParams) ([]domain.Customer, error) {
	args := m.Called(ctx, params)
	var customers []domain.Customer
	if arg0 := args.Get(0); arg0 != nil {
		customers = arg0.([]domain.Customer)
	}
	return customers, args.Error(1)
}

func (m *MockCustomerStorer) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerStorer) ArchiveCustomer(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerStorer) GetCustomerByUserID(ctx context.Context, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockIdentityStorer is a mock implementation of store.IdentityStorer
type MockIdentityStorer struct {
	mock.Mock
}

func (m *MockIdentityStorer) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockSystemStorer is a mock implementation of store.SystemStorer
type MockSystemStorer struct {
	mock.Mock
}

func (m *MockSystemStorer) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func (m *MockSystemStorer) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSystemStorer) UpdateSettings(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	args := m.Called(ctx, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
