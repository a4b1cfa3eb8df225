package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paint-catalog-service/internal/domain"
	"paint-catalog-service/internal/store"
)

const testPricelistID = "6d5c4b3a-2f1e-4d0c-9b8a-7f6e5d4c3b2a"

func TestHTTPHandler_GetCustomerProducts_NoPricelistAssigned(t *testing.T) {
	server, mocks, tokens := setupTestChiServer(t)

	mocks.customers.On("GetCustomerByUserID", mock.Anything, testUserID).
		Return(&domain.Customer{
			ID:          testCustomerID,
			CompanyName: "Riga Decorators",
			PricelistID: nil,
			Status:      domain.StatusActive,
		}, nil).Once()

	res := doJSON(t, http.MethodGet, server.URL+"/api/v1/customer/products", bearerFor(t, tokens, domain.RoleCustomer), nil)
	defer res.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&errResp))
	assert.Equal(t, "no_pricelist_assigned", errResp.Code, "Missing pricelist must be its own failure, not an empty catalog")

	mocks.customers.AssertExpectations(t)
	mocks.pricing.AssertNotCalled(t, "GetProductsForPricelist", mock.Anything, mock.Anything)
}

func TestHTTPHandler_GetCustomerProducts_NoCustomerRecord(t *testing.T) {
	server, mocks, tokens := setupTestChiServer(t)

	mocks.customers.On("GetCustomerByUserID", mock.Anything, testUserID).
		Return(nil, store.ErrCustomerNotFound).Once()

	res := doJSON(t, http.MethodGet, server.URL+"/api/v1/customer/products", bearerFor(t, tokens, domain.RoleCustomer), nil)
	defer res.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&errResp))
	assert.Equal(t, "no_pricelist_assigned", errResp.Code)

	mocks.customers.AssertExpectations(t)
}

func TestHTTPHandler_GetCustomerProducts_RendersUnpricedVariants(t *testing.T) {
	server, mocks, tokens := setupTestChiServer(t)

	price := decimal.RequireFromString("24.99")
	catalogRows := []domain.CustomerProduct{{
		ID:   testProductID,
		Name: "Wall Paint Matt",
		Variants: []domain.CustomerVariant{
			{ID: "v1", SKU: "DUL-WAL-5L-RED-042", Price: &price, PriceAvailable: true},
			{ID: "v2", SKU: "DUL-WAL-1L-RED-007", Price: nil, PriceAvailable: false},
		},
	}}

	mocks.customers.On("GetCustomerByUserID", mock.Anything, testUserID).
		Return(&domain.Customer{
			ID:          testCustomerID,
			CompanyName: "Riga Decorators",
			PricelistID: PtrTo(testPricelistID),
			Status:      domain.StatusActive,
		}, nil).Once()
	mocks.pricing.On("GetProductsForPricelist", mock.Anything, testPricelistID).
		Return(catalogRows, nil).Once()

	res := doJSON(t, http.MethodGet, server.URL+"/api/v1/customer/products", bearerFor(t, tokens, domain.RoleCustomer), nil)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	// Decode into raw JSON to check exactly how the missing price renders.
	var payload []map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Len(t, payload, 1)
	variants := payload[0]["variants"].([]interface{})
	require.Len(t, variants, 2)

	priced := variants[0].(map[string]interface{})
	assert.Equal(t, "24.99", priced["price"])
	assert.Equal(t, true, priced["price_available"])

	unpriced := variants[1].(map[string]interface{})
	assert.Nil(t, unpriced["price"], "Missing price must serialize as null, never 0")
	assert.Equal(t, false, unpriced["price_available"])

	mocks.customers.AssertExpectations(t)
	mocks.pricing.AssertExpectations(t)
}

func TestHTTPHandler_UpsertPriceEntry_Success(t *testing.T) {
	server, mocks, tokens := setupTestChiServer(t)

	price := decimal.RequireFromString("9.55")
	variantID := "4f3e2d1c-0b9a-4878-a6b5-c4d3e2f1a0b9"
	mocks.pricing.On("UpsertPriceEntry", mock.Anything, testPricelistID, variantID, price).
		Return(&domain.PriceEntry{
			ID:          "e1",
			PricelistID: testPricelistID,
			VariantID:   variantID,
			Price:       price,
		}, nil).Once()

	res := doJSON(t, http.MethodPut,
		server.URL+"/api/v1/admin/pricelists/"+testPricelistID+"/items/"+variantID,
		bearerFor(t, tokens, domain.RoleAdmin), PriceEntryInput{Price: price})
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	var entry domain.PriceEntry
	require.NoError(t, json.NewDecoder(res.Body).Decode(&entry))
	assert.True(t, entry.Price.Equal(price))

	mocks.pricing.AssertExpectations(t)
}

func TestHTTPHandler_UpsertPriceEntry_NegativePrice(t *testing.T) {
	server, mocks, tokens := setupTestChiServer(t)

	variantID := "4f3e2d1c-0b9a-4878-a6b5-c4d3e2f1a0b9"
	res := doJSON(t, http.MethodPut,
		server.URL+"/api/v1/admin/pricelists/"+testPricelistID+"/items/"+variantID,
		bearerFor(t, tokens, domain.RoleAdmin),
		PriceEntryInput{Price: decimal.RequireFromString("-1")})
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	mocks.pricing.AssertNotCalled(t, "UpsertPriceEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTPHandler_CreateCustomer_InvalidPricelist(t *testing.T) {
	server, mocks, tokens := setupTestChiServer(t)

	mocks.customers.On("CreateCustomer", mock.Anything, mock.Anything).
		Return(nil, store.ErrInvalidReference).Once()

	res := doJSON(t, http.MethodPost, server.URL+"/api/v1/admin/customers", bearerFor(t, tokens, domain.RoleAdmin),
		CustomerCreateInput{
			CompanyName:   "Riga Decorators",
			ContactPerson: "J. Ozols",
			PricelistID:   PtrTo(testPricelistID),
		})
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	mocks.customers.AssertExpectations(t)
}

func TestHTTPHandler_GetDashboard(t *testing.T) {
	server, mocks, tokens := setupTestChiServer(t)

	mocks.system.On("GetDashboardStats", mock.Anything).
		Return(&domain.DashboardStats{TotalProducts: 42, ActiveBrands: 5, Categories: 8, Customers: 13}, nil).Once()

	res := doJSON(t, http.MethodGet, server.URL+"/api/v1/admin/dashboard", bearerFor(t, tokens, domain.RoleAdmin), nil)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	var stats domain.DashboardStats
	require.NoError(t, json.NewDecoder(res.Body).Decode(&stats))
	assert.Equal(t, 42, stats.TotalProducts)

	mocks.system.AssertExpectations(t)
}

func TestHTTPHandler_UpdateSettings_Validation(t *testing.T) {
	server, mocks, tokens := setupTestChiServer(t)

	res := doJSON(t, http.MethodPut, server.URL+"/api/v1/admin/settings", bearerFor(t, tokens, domain.RoleAdmin),
		SettingsInput{CompanyName: "Paint Co", ContactEmail: "not-an-email"})
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	mocks.system.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything)
}
