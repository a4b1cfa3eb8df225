package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"paint-catalog-service/internal/cache"
	"paint-catalog-service/internal/catalog"
	"paint-catalog-service/internal/domain"
	"paint-catalog-service/internal/store"
)

// ProductCreateInput defines the expected input for creating a product.
// BrandID, SubBrandID and CategoryID are optional references.
type ProductCreateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=1000"`
	BrandID     *string `json:"brand_id" validate:"omitempty,uuid"`
	SubBrandID  *string `json:"sub_brand_id" validate:"omitempty,uuid"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// ProductUpdateInput defines the expected input for updating a product.
type ProductUpdateInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=1000"`
	BrandID     *string `json:"brand_id" validate:"omitempty,uuid"`
	SubBrandID  *string `json:"sub_brand_id" validate:"omitempty,uuid"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Status      string  `json:"status" validate:"required,oneof=active inactive archived"`
}

// checkSubBrandParentage verifies that a submitted sub-brand belongs to the
// submitted brand. A sub-brand without its parent brand, or under a
// different brand, is rejected before the row is written. Returns false
// after writing the error response.
func (h *HTTPHandler) checkSubBrandParentage(w http.ResponseWriter, r *http.Request, brandID, subBrandID *string) bool {
	if subBrandID == nil {
		return true
	}
	if brandID == nil {
		respondWithError(w, http.StatusBadRequest, "sub_brand_id requires brand_id")
		return false
	}
	sb, err := h.stores.Catalog.GetSubBrandByID(r.Context(), *subBrandID)
	if err != nil {
		if errors.Is(err, store.ErrSubBrandNotFound) {
			respondWithError(w, http.StatusBadRequest, "Invalid sub_brand_id: sub-brand does not exist")
		} else {
			log.Printf("ERROR: sub-brand lookup for ID %s failed: %v", *subBrandID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to validate sub-brand")
		}
		return false
	}
	if sb.BrandID != *brandID {
		respondWithError(w, http.StatusBadRequest, "sub_brand_id does not belong to brand_id")
		return false
	}
	return true
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}
	if !h.checkSubBrandParentage(w, r, input.BrandID, input.SubBrandID) {
		return
	}

	created, err := h.stores.Products.CreateProduct(r.Context(), &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		BrandID:     input.BrandID,
		SubBrandID:  input.SubBrandID,
		CategoryID:  input.CategoryID,
		Status:      statusFromInput(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: CreateProduct store operation failed: %v", err)
		if errors.Is(err, store.ErrInvalidReference) {
			respondWithError(w, http.StatusBadRequest, "Referenced brand, sub-brand or category does not exist")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to create product")
		}
		return
	}

	h.cache.Invalidate(cache.Products)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID := uuidParam(w, r, "productId")
	if productID == "" {
		return
	}

	product, err := h.stores.Products.GetProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			log.Printf("ERROR: GetProductByID store operation for ID %s failed: %v", productID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, key, ok := listParamsFromQuery(w, r)
	if !ok {
		return
	}

	products, err := cache.Fetch(r.Context(), h.cache, cache.Products, key, func(ctx context.Context) ([]domain.Product, error) {
		return h.stores.Products.ListProducts(ctx, params)
	})
	if err != nil {
		log.Printf("ERROR: ListProducts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := uuidParam(w, r, "productId")
	if productID == "" {
		return
	}
	var input ProductUpdateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	// The parentage check is what keeps a stale sub-brand from surviving a
	// brand change: only a sub-brand belonging to the submitted brand
	// reaches the store, everything else is rejected or arrives nil.
	if !h.checkSubBrandParentage(w, r, input.BrandID, input.SubBrandID) {
		return
	}

	updated, err := h.stores.Products.UpdateProduct(r.Context(), &domain.Product{
		ID:          productID,
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		BrandID:     input.BrandID,
		SubBrandID:  input.SubBrandID,
		CategoryID:  input.CategoryID,
		Status:      domain.Status(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: UpdateProduct store operation for ID %s failed: %v", productID, err)
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		case errors.Is(err, store.ErrInvalidReference):
			respondWithError(w, http.StatusBadRequest, "Referenced brand, sub-brand or category does not exist")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	h.cache.Invalidate(cache.Products)
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) ArchiveProduct(w http.ResponseWriter, r *http.Request) {
	productID := uuidParam(w, r, "productId")
	if productID == "" {
		return
	}

	if err := h.stores.Products.ArchiveProduct(r.Context(), productID); err != nil {
		log.Printf("ERROR: ArchiveProduct store operation for ID %s failed: %v", productID, err)
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to archive product")
		}
		return
	}

	h.cache.Invalidate(cache.Products)
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Variant handlers ---

// VariantCreateInput defines the expected input for creating a product
// variant. SKU is taken as submitted; SuggestVariantSKU only offers a
// default the client may edit.
type VariantCreateInput struct {
	SizeID *string `json:"size_id" validate:"omitempty,uuid"`
	Color  *string `json:"color" validate:"omitempty,max=100"`
	SKU    string  `json:"sku" validate:"required,max=64"`
	Status string  `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// VariantUpdateInput defines the expected input for updating a product
// variant.
type VariantUpdateInput struct {
	SizeID *string `json:"size_id" validate:"omitempty,uuid"`
	Color  *string `json:"color" validate:"omitempty,max=100"`
	SKU    string  `json:"sku" validate:"required,max=64"`
	Status string  `json:"status" validate:"required,oneof=active inactive archived"`
}

// SKUSuggestion is the response body of SuggestVariantSKU.
type SKUSuggestion struct {
	SKU string `json:"sku"`
}

func (h *HTTPHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	productID := uuidParam(w, r, "productId")
	if productID == "" {
		return
	}
	var input VariantCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.stores.Products.CreateVariant(r.Context(), &domain.ProductVariant{
		ProductID: productID,
		SizeID:    input.SizeID,
		Color:     input.Color,
		SKU:       input.SKU,
		Status:    statusFromInput(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: CreateVariant store operation failed: %v", err)
		switch {
		case errors.Is(err, store.ErrVariantSKUExists):
			respondWithError(w, http.StatusConflict, store.ErrVariantSKUExists.Error())
		case errors.Is(err, store.ErrInvalidReference):
			respondWithError(w, http.StatusBadRequest, "Referenced product or size does not exist")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to create product variant")
		}
		return
	}

	h.cache.Invalidate(cache.ProductVariants)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	productID := uuidParam(w, r, "productId")
	if productID == "" {
		return
	}
	params, key, ok := listParamsFromQuery(w, r)
	if !ok {
		return
	}

	variants, err := cache.Fetch(r.Context(), h.cache, cache.ProductVariants, productID+":"+key, func(ctx context.Context) ([]domain.ProductVariant, error) {
		return h.stores.Products.ListVariants(ctx, productID, params)
	})
	if err != nil {
		log.Printf("ERROR: ListVariants store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product variants")
		return
	}
	respondWithJSON(w, http.StatusOK, variants)
}

// SuggestVariantSKU proposes a SKU for a new variant of the product,
// composed from the product's name, its brand name and the optional
// ?size_id= and ?color= query inputs. The suggestion is not reserved;
// uniqueness is checked only when the variant is created.
func (h *HTTPHandler) SuggestVariantSKU(w http.ResponseWriter, r *http.Request) {
	productID := uuidParam(w, r, "productId")
	if productID == "" {
		return
	}

	product, err := h.stores.Products.GetProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			log.Printf("ERROR: product lookup for SKU suggestion failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to suggest SKU")
		}
		return
	}

	parts := catalog.SKUParts{
		ProductName: product.Name,
		Color:       r.URL.Query().Get("color"),
	}
	if product.Brand != nil {
		parts.BrandName = product.Brand.Name
	}
	if sizeID := r.URL.Query().Get("size_id"); sizeID != "" {
		if _, err := uuid.Parse(sizeID); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid size_id format")
			return
		}
		sizes, err := cache.Fetch(r.Context(), h.cache, cache.Sizes, "all", func(ctx context.Context) ([]domain.Size, error) {
			return h.stores.Catalog.ListSizes(ctx, store.ListParams{})
		})
		if err != nil {
			log.Printf("ERROR: size lookup for SKU suggestion failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to suggest SKU")
			return
		}
		found := false
		for _, sz := range sizes {
			if sz.ID == sizeID {
				parts.SizeName = sz.Name
				found = true
				break
			}
		}
		if !found {
			respondWithError(w, http.StatusBadRequest, "Referenced size does not exist")
			return
		}
	}
	respondWithJSON(w, http.StatusOK, SKUSuggestion{SKU: catalog.GenerateSKU(parts)})
}

func (h *HTTPHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	if productID := uuidParam(w, r, "productId"); productID == "" {
		return
	}
	variantID := uuidParam(w, r, "variantId")
	if variantID == "" {
		return
	}
	var input VariantUpdateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.stores.Products.UpdateVariant(r.Context(), &domain.ProductVariant{
		ID:     variantID,
		SizeID: input.SizeID,
		Color:  input.Color,
		SKU:    input.SKU,
		Status: domain.Status(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: UpdateVariant store operation for ID %s failed: %v", variantID, err)
		switch {
		case errors.Is(err, store.ErrVariantNotFound):
			respondWithError(w, http.StatusNotFound, store.ErrVariantNotFound.Error())
		case errors.Is(err, store.ErrVariantSKUExists):
			respondWithError(w, http.StatusConflict, store.ErrVariantSKUExists.Error())
		case errors.Is(err, store.ErrInvalidReference):
			respondWithError(w, http.StatusBadRequest, "Referenced size does not exist")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update product variant")
		}
		return
	}

	h.cache.Invalidate(cache.ProductVariants)
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) ArchiveVariant(w http.ResponseWriter, r *http.Request) {
	if productID := uuidParam(w, r, "productId"); productID == "" {
		return
	}
	variantID := uuidParam(w, r, "variantId")
	if variantID == "" {
		return
	}

	if err := h.stores.Products.ArchiveVariant(r.Context(), variantID); err != nil {
		log.Printf("ERROR: ArchiveVariant store operation for ID %s failed: %v", variantID, err)
		if errors.Is(err, store.ErrVariantNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrVariantNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to archive product variant")
		}
		return
	}

	h.cache.Invalidate(cache.ProductVariants)
	respondWithJSON(w, http.StatusNoContent, nil)
}
