package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"paint-catalog-service/internal/cache"
	"paint-catalog-service/internal/domain"
	"paint-catalog-service/internal/store"
)

// --- Customer account handlers ---

// CustomerCreateInput defines the expected input for creating a customer
// account. The login link (user_id) is not writable here: provisioning
// identities happens in a higher-privilege process.
type CustomerCreateInput struct {
	CompanyName   string  `json:"company_name" validate:"required,max=255"`
	ContactPerson string  `json:"contact_person" validate:"required,max=255"`
	PricelistID   *string `json:"pricelist_id" validate:"omitempty,uuid"`
	Status        string  `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// CustomerUpdateInput defines the expected input for updating a customer
// account.
type CustomerUpdateInput struct {
	CompanyName   string  `json:"company_name" validate:"required,max=255"`
	ContactPerson string  `json:"contact_person" validate:"required,max=255"`
	PricelistID   *string `json:"pricelist_id" validate:"omitempty,uuid"`
	Status        string  `json:"status" validate:"required,oneof=active inactive archived"`
}

func (h *HTTPHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var input CustomerCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.stores.Customers.CreateCustomer(r.Context(), &domain.Customer{
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		PricelistID:   input.PricelistID,
		Status:        statusFromInput(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: CreateCustomer store operation failed: %v", err)
		if errors.Is(err, store.ErrInvalidReference) {
			respondWithError(w, http.StatusBadRequest, "Referenced pricelist does not exist")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to create customer")
		}
		return
	}

	h.cache.Invalidate(cache.Customers)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	params, key, ok := listParamsFromQuery(w, r)
	if !ok {
		return
	}

	customers, err := cache.Fetch(r.Context(), h.cache, cache.Customers, key, func(ctx context.Context) ([]domain.Customer, error) {
		return h.stores.Customers.ListCustomers(ctx, params)
	})
	if err != nil {
		log.Printf("ERROR: ListCustomers store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	respondWithJSON(w, http.StatusOK, customers)
}

func (h *HTTPHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := uuidParam(w, r, "customerId")
	if customerID == "" {
		return
	}
	var input CustomerUpdateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.stores.Customers.UpdateCustomer(r.Context(), &domain.Customer{
		ID:            customerID,
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		PricelistID:   input.PricelistID,
		Status:        domain.Status(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: UpdateCustomer store operation for ID %s failed: %v", customerID, err)
		switch {
		case errors.Is(err, store.ErrCustomerNotFound):
			respondWithError(w, http.StatusNotFound, store.ErrCustomerNotFound.Error())
		case errors.Is(err, store.ErrInvalidReference):
			respondWithError(w, http.StatusBadRequest, "Referenced pricelist does not exist")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update customer")
		}
		return
	}

	h.cache.Invalidate(cache.Customers)
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) ArchiveCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := uuidParam(w, r, "customerId")
	if customerID == "" {
		return
	}

	if err := h.stores.Customers.ArchiveCustomer(r.Context(), customerID); err != nil {
		log.Printf("ERROR: ArchiveCustomer store operation for ID %s failed: %v", customerID, err)
		if errors.Is(err, store.ErrCustomerNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrCustomerNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to archive customer")
		}
		return
	}

	h.cache.Invalidate(cache.Customers)
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Pricelist handlers ---

// PricelistCreateInput defines the expected input for creating a pricelist.
type PricelistCreateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// PricelistUpdateInput defines the expected input for updating a pricelist.
type PricelistUpdateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      string  `json:"status" validate:"required,oneof=active inactive archived"`
}

func (h *HTTPHandler) CreatePricelist(w http.ResponseWriter, r *http.Request) {
	var input PricelistCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.stores.Pricing.CreatePricelist(r.Context(), &domain.Pricelist{
		Name:        input.Name,
		Description: input.Description,
		Status:      statusFromInput(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: CreatePricelist store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create pricelist")
		return
	}

	h.cache.Invalidate(cache.Pricelists)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListPricelists(w http.ResponseWriter, r *http.Request) {
	params, key, ok := listParamsFromQuery(w, r)
	if !ok {
		return
	}

	pricelists, err := cache.Fetch(r.Context(), h.cache, cache.Pricelists, key, func(ctx context.Context) ([]domain.Pricelist, error) {
		return h.stores.Pricing.ListPricelists(ctx, params)
	})
	if err != nil {
		log.Printf("ERROR: ListPricelists store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve pricelists")
		return
	}
	respondWithJSON(w, http.StatusOK, pricelists)
}

func (h *HTTPHandler) UpdatePricelist(w http.ResponseWriter, r *http.Request) {
	pricelistID := uuidParam(w, r, "pricelistId")
	if pricelistID == "" {
		return
	}
	var input PricelistUpdateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.stores.Pricing.UpdatePricelist(r.Context(), &domain.Pricelist{
		ID:          pricelistID,
		Name:        input.Name,
		Description: input.Description,
		Status:      domain.Status(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: UpdatePricelist store operation for ID %s failed: %v", pricelistID, err)
		if errors.Is(err, store.ErrPricelistNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrPricelistNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to update pricelist")
		}
		return
	}

	h.cache.Invalidate(cache.Pricelists)
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) ArchivePricelist(w http.ResponseWriter, r *http.Request) {
	pricelistID := uuidParam(w, r, "pricelistId")
	if pricelistID == "" {
		return
	}

	if err := h.stores.Pricing.ArchivePricelist(r.Context(), pricelistID); err != nil {
		log.Printf("ERROR: ArchivePricelist store operation for ID %s failed: %v", pricelistID, err)
		if errors.Is(err, store.ErrPricelistNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrPricelistNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to archive pricelist")
		}
		return
	}

	h.cache.Invalidate(cache.Pricelists)
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Price entry handlers ---

// PriceEntryInput defines the expected input for setting a variant's price
// on a pricelist. Concurrent writes to the same (pricelist, variant) pair
// resolve last-write-wins.
type PriceEntryInput struct {
	Price decimal.Decimal `json:"price" validate:"required"`
}

func (h *HTTPHandler) ListPriceEntries(w http.ResponseWriter, r *http.Request) {
	pricelistID := uuidParam(w, r, "pricelistId")
	if pricelistID == "" {
		return
	}

	entries, err := cache.Fetch(r.Context(), h.cache, cache.PriceEntries, pricelistID, func(ctx context.Context) ([]domain.PriceEntry, error) {
		return h.stores.Pricing.ListPriceEntries(ctx, pricelistID)
	})
	if err != nil {
		log.Printf("ERROR: ListPriceEntries store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve price entries")
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

func (h *HTTPHandler) UpsertPriceEntry(w http.ResponseWriter, r *http.Request) {
	pricelistID := uuidParam(w, r, "pricelistId")
	if pricelistID == "" {
		return
	}
	variantID := uuidParam(w, r, "variantId")
	if variantID == "" {
		return
	}
	var input PriceEntryInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}
	if input.Price.IsNegative() {
		respondWithError(w, http.StatusBadRequest, "Price must not be negative")
		return
	}

	entry, err := h.stores.Pricing.UpsertPriceEntry(r.Context(), pricelistID, variantID, input.Price)
	if err != nil {
		log.Printf("ERROR: UpsertPriceEntry store operation failed: %v", err)
		if errors.Is(err, store.ErrInvalidReference) {
			respondWithError(w, http.StatusBadRequest, "Referenced pricelist or variant does not exist")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to set price")
		}
		return
	}

	h.cache.Invalidate(cache.PriceEntries)
	respondWithJSON(w, http.StatusOK, entry)
}

// --- Customer storefront ---

// GetCustomerProducts returns the signed-in customer's catalog: active
// products and variants priced against the customer's assigned pricelist.
// A customer without a pricelist gets a distinct failure, never an empty
// or zero-priced catalog.
func (h *HTTPHandler) GetCustomerProducts(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// No customer record and no assigned pricelist are the same failure:
	// there is no price schedule to resolve against.
	customer, err := h.stores.Customers.GetCustomerByUserID(r.Context(), claims.UserID)
	if err != nil && !errors.Is(err, store.ErrCustomerNotFound) {
		log.Printf("ERROR: customer lookup for user %s failed: %v", claims.UserID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve catalog")
		return
	}
	if err != nil || customer.PricelistID == nil {
		respondWithErrorCode(w, http.StatusUnprocessableEntity,
			"No pricelist assigned to this account", "no_pricelist_assigned")
		return
	}

	products, err := cache.Fetch(r.Context(), h.cache, cache.CustomerCatalog, claims.UserID, func(ctx context.Context) ([]domain.CustomerProduct, error) {
		return h.stores.Pricing.GetProductsForPricelist(ctx, *customer.PricelistID)
	})
	if err != nil {
		log.Printf("ERROR: GetProductsForPricelist for pricelist %s failed: %v", *customer.PricelistID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve catalog")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

// --- Dashboard and settings ---

// SettingsInput defines the expected input for updating application
// settings.
type SettingsInput struct {
	CompanyName        string `json:"company_name" validate:"required,max=255"`
	ContactEmail       string `json:"contact_email" validate:"required,email,max=255"`
	NotifyNewOrders    bool   `json:"notify_new_orders"`
	NotifyNewCustomers bool   `json:"notify_new_customers"`
}

func (h *HTTPHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stores.System.GetDashboardStats(r.Context())
	if err != nil {
		log.Printf("ERROR: GetDashboardStats store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve dashboard stats")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

func (h *HTTPHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.stores.System.GetSettings(r.Context())
	if err != nil {
		log.Printf("ERROR: GetSettings store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

func (h *HTTPHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var input SettingsInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	settings, err := h.stores.System.UpdateSettings(r.Context(), &domain.Settings{
		CompanyName:        input.CompanyName,
		ContactEmail:       input.ContactEmail,
		NotifyNewOrders:    input.NotifyNewOrders,
		NotifyNewCustomers: input.NotifyNewCustomers,
	})
	if err != nil {
		log.Printf("ERROR: UpdateSettings store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}
