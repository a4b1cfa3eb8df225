package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"paint-catalog-service/internal/cache"
	"paint-catalog-service/internal/domain"
	"paint-catalog-service/internal/store"
)

// --- Brand handlers ---

// BrandCreateInput defines the expected input for creating a brand.
type BrandCreateInput struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// BrandUpdateInput defines the expected input for updating a brand.
type BrandUpdateInput struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status string `json:"status" validate:"required,oneof=active inactive archived"`
}

func (h *HTTPHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var input BrandCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.stores.Catalog.CreateBrand(r.Context(), &domain.Brand{
		Name:   input.Name,
		Status: statusFromInput(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: CreateBrand store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create brand")
		return
	}

	h.cache.Invalidate(cache.Brands)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	params, key, ok := listParamsFromQuery(w, r)
	if !ok {
		return
	}

	brands, err := cache.Fetch(r.Context(), h.cache, cache.Brands, key, func(ctx context.Context) ([]domain.Brand, error) {
		return h.stores.Catalog.ListBrands(ctx, params)
	})
	if err != nil {
		log.Printf("ERROR: ListBrands store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve brands")
		return
	}
	respondWithJSON(w, http.StatusOK, brands)
}

func (h *HTTPHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	brandID := uuidParam(w, r, "brandId")
	if brandID == "" {
		return
	}
	var input BrandUpdateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.stores.Catalog.UpdateBrand(r.Context(), &domain.Brand{
		ID:     brandID,
		Name:   input.Name,
		Status: domain.Status(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: UpdateBrand store operation for ID %s failed: %v", brandID, err)
		if errors.Is(err, store.ErrBrandNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrBrandNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to update brand")
		}
		return
	}

	h.cache.Invalidate(cache.Brands)
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) ArchiveBrand(w http.ResponseWriter, r *http.Request) {
	brandID := uuidParam(w, r, "brandId")
	if brandID == "" {
		return
	}

	if err := h.stores.Catalog.ArchiveBrand(r.Context(), brandID); err != nil {
		log.Printf("ERROR: ArchiveBrand store operation for ID %s failed: %v", brandID, err)
		if errors.Is(err, store.ErrBrandNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrBrandNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to archive brand")
		}
		return
	}

	h.cache.Invalidate(cache.Brands)
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Sub-brand handlers ---

// SubBrandCreateInput defines the expected input for creating a sub-brand.
type SubBrandCreateInput struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// SubBrandUpdateInput defines the expected input for updating a sub-brand.
type SubBrandUpdateInput struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status string `json:"status" validate:"required,oneof=active inactive archived"`
}

func (h *HTTPHandler) CreateSubBrand(w http.ResponseWriter, r *http.Request) {
	brandID := uuidParam(w, r, "brandId")
	if brandID == "" {
		return
	}
	var input SubBrandCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.stores.Catalog.CreateSubBrand(r.Context(), &domain.SubBrand{
		BrandID: brandID,
		Name:    input.Name,
		Status:  statusFromInput(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: CreateSubBrand store operation failed: %v", err)
		if errors.Is(err, store.ErrInvalidReference) {
			respondWithError(w, http.StatusBadRequest, "Invalid brand_id: brand does not exist")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to create sub-brand")
		}
		return
	}

	// Brand listings embed sub-brands; the walk drops them too.
	h.cache.Invalidate(cache.SubBrands)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListSubBrands(w http.ResponseWriter, r *http.Request) {
	brandID := uuidParam(w, r, "brandId")
	if brandID == "" {
		return
	}
	params, key, ok := listParamsFromQuery(w, r)
	if !ok {
		return
	}

	subBrands, err := cache.Fetch(r.Context(), h.cache, cache.SubBrands, brandID+":"+key, func(ctx context.Context) ([]domain.SubBrand, error) {
		return h.stores.Catalog.ListSubBrands(ctx, brandID, params)
	})
	if err != nil {
		log.Printf("ERROR: ListSubBrands store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve sub-brands")
		return
	}
	respondWithJSON(w, http.StatusOK, subBrands)
}

func (h *HTTPHandler) UpdateSubBrand(w http.ResponseWriter, r *http.Request) {
	if brandID := uuidParam(w, r, "brandId"); brandID == "" {
		return
	}
	subBrandID := uuidParam(w, r, "subBrandId")
	if subBrandID == "" {
		return
	}
	var input SubBrandUpdateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.stores.Catalog.UpdateSubBrand(r.Context(), &domain.SubBrand{
		ID:     subBrandID,
		Name:   input.Name,
		Status: domain.Status(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: UpdateSubBrand store operation for ID %s failed: %v", subBrandID, err)
		if errors.Is(err, store.ErrSubBrandNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrSubBrandNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to update sub-brand")
		}
		return
	}

	h.cache.Invalidate(cache.SubBrands)
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) ArchiveSubBrand(w http.ResponseWriter, r *http.Request) {
	if brandID := uuidParam(w, r, "brandId"); brandID == "" {
		return
	}
	subBrandID := uuidParam(w, r, "subBrandId")
	if subBrandID == "" {
		return
	}

	if err := h.stores.Catalog.ArchiveSubBrand(r.Context(), subBrandID); err != nil {
		log.Printf("ERROR: ArchiveSubBrand store operation for ID %s failed: %v", subBrandID, err)
		if errors.Is(err, store.ErrSubBrandNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrSubBrandNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to archive sub-brand")
		}
		return
	}

	h.cache.Invalidate(cache.SubBrands)
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Category handlers ---

// CategoryCreateInput defines the expected input for creating a category.
type CategoryCreateInput struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// CategoryUpdateInput defines the expected input for updating a category.
type CategoryUpdateInput struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status string `json:"status" validate:"required,oneof=active inactive archived"`
}

func (h *HTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.stores.Catalog.CreateCategory(r.Context(), &domain.Category{
		Name:   input.Name,
		Status: statusFromInput(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: CreateCategory store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	h.cache.Invalidate(cache.Categories)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	params, key, ok := listParamsFromQuery(w, r)
	if !ok {
		return
	}

	categories, err := cache.Fetch(r.Context(), h.cache, cache.Categories, key, func(ctx context.Context) ([]domain.Category, error) {
		return h.stores.Catalog.ListCategories(ctx, params)
	})
	if err != nil {
		log.Printf("ERROR: ListCategories store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

func (h *HTTPHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := uuidParam(w, r, "categoryId")
	if categoryID == "" {
		return
	}
	var input CategoryUpdateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.stores.Catalog.UpdateCategory(r.Context(), &domain.Category{
		ID:     categoryID,
		Name:   input.Name,
		Status: domain.Status(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: UpdateCategory store operation for ID %s failed: %v", categoryID, err)
		if errors.Is(err, store.ErrCategoryNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrCategoryNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	h.cache.Invalidate(cache.Categories)
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) ArchiveCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := uuidParam(w, r, "categoryId")
	if categoryID == "" {
		return
	}

	if err := h.stores.Catalog.ArchiveCategory(r.Context(), categoryID); err != nil {
		log.Printf("ERROR: ArchiveCategory store operation for ID %s failed: %v", categoryID, err)
		if errors.Is(err, store.ErrCategoryNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrCategoryNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to archive category")
		}
		return
	}

	h.cache.Invalidate(cache.Categories)
	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Size handlers ---

// SizeCreateInput defines the expected input for creating a size.
type SizeCreateInput struct {
	Name   string `json:"name" validate:"required,max=100"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// SizeUpdateInput defines the expected input for updating a size.
type SizeUpdateInput struct {
	Name   string `json:"name" validate:"required,max=100"`
	Status string `json:"status" validate:"required,oneof=active inactive archived"`
}

func (h *HTTPHandler) CreateSize(w http.ResponseWriter, r *http.Request) {
	var input SizeCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.stores.Catalog.CreateSize(r.Context(), &domain.Size{
		Name:   input.Name,
		Status: statusFromInput(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: CreateSize store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to create size")
		return
	}

	h.cache.Invalidate(cache.Sizes)
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListSizes(w http.ResponseWriter, r *http.Request) {
	params, key, ok := listParamsFromQuery(w, r)
	if !ok {
		return
	}

	sizes, err := cache.Fetch(r.Context(), h.cache, cache.Sizes, key, func(ctx context.Context) ([]domain.Size, error) {
		return h.stores.Catalog.ListSizes(ctx, params)
	})
	if err != nil {
		log.Printf("ERROR: ListSizes store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve sizes")
		return
	}
	respondWithJSON(w, http.StatusOK, sizes)
}

func (h *HTTPHandler) UpdateSize(w http.ResponseWriter, r *http.Request) {
	sizeID := uuidParam(w, r, "sizeId")
	if sizeID == "" {
		return
	}
	var input SizeUpdateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.stores.Catalog.UpdateSize(r.Context(), &domain.Size{
		ID:     sizeID,
		Name:   input.Name,
		Status: domain.Status(input.Status),
	})
	if err != nil {
		log.Printf("ERROR: UpdateSize store operation for ID %s failed: %v", sizeID, err)
		if errors.Is(err, store.ErrSizeNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrSizeNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to update size")
		}
		return
	}

	h.cache.Invalidate(cache.Sizes)
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) ArchiveSize(w http.ResponseWriter, r *http.Request) {
	sizeID := uuidParam(w, r, "sizeId")
	if sizeID == "" {
		return
	}

	if err := h.stores.Catalog.ArchiveSize(r.Context(), sizeID); err != nil {
		log.Printf("ERROR: ArchiveSize store operation for ID %s failed: %v", sizeID, err)
		if errors.Is(err, store.ErrSizeNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrSizeNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to archive size")
		}
		return
	}

	h.cache.Invalidate(cache.Sizes)
	respondWithJSON(w, http.StatusNoContent, nil)
}
