package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"paint-catalog-service/internal/auth"
	"paint-catalog-service/internal/cache"
	"paint-catalog-service/internal/domain"
	"paint-catalog-service/internal/store"
)

// Stores bundles the storage interfaces the HTTP layer depends on. One
// *store.PostgresStore satisfies all of them in production; tests swap in
// mocks per interface.
type Stores struct {
	Catalog   store.CatalogStorer
	Products  store.ProductStorer
	Pricing   store.PricingStorer
	Customers store.CustomerStorer
	Identity  store.IdentityStorer
	System    store.SystemStorer
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	stores   Stores
	tokens   *auth.TokenManager
	cache    *cache.Store
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(stores Stores, tokens *auth.TokenManager, cacheStore *cache.Store) *HTTPHandler {
	return &HTTPHandler{
		stores:   stores,
		tokens:   tokens,
		cache:    cacheStore,
		validate: validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses. Code is
// set only for failures the client is expected to branch on.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithErrorCode(w http.ResponseWriter, code int, message, machineCode string) {
	respondWithJSON(w, code, ErrorResponse{Error: message, Code: machineCode})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// uuidParam reads and validates a UUID path parameter. The empty return
// means the response has already been written.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if _, err := uuid.Parse(raw); err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", name))
		return ""
	}
	return raw
}

// decodeAndValidate decodes the JSON body into input and runs struct
// validation, writing the 400 response itself on failure.
func (h *HTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, input interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// statusFromInput resolves the status field of create inputs: unset means
// active, anything else must be a known state.
func statusFromInput(s string) domain.Status {
	if s == "" {
		return domain.StatusActive
	}
	return domain.Status(s)
}

// listParamsFromQuery builds the common listing filter from ?status=.
// The key return names the cache entry for the filter.
func listParamsFromQuery(w http.ResponseWriter, r *http.Request) (store.ListParams, string, bool) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return store.ListParams{}, "all", true
	}
	status := domain.Status(raw)
	if !status.Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid status value. Allowed: active, inactive, archived")
		return store.ListParams{}, "", false
	}
	return store.ListParams{Status: &status}, raw, true
}

// --- Session handlers ---

// LoginInput is the sign-in request body.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token and its resolved role.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	user, err := h.stores.Identity.GetUserByEmail(r.Context(), input.Email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Printf("ERROR: Login user lookup failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Sign-in failed")
			return
		}
		// Unknown email and bad password answer identically.
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, input.Password); err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		log.Printf("ERROR: Login token generation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Sign-in failed")
		return
	}

	claims := auth.Claims{Role: user.Role}
	respondWithJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.tokens.TokenDuration(),
		Email:       user.Email,
		Role:        claims.EffectiveRole(),
	})
}

// Logout drops the caller's identity-scoped cache entries. Discarding the
// bearer token is the client's half of sign-out; nothing cached here may be
// presented as current afterwards.
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	h.cache.InvalidateKey(cache.CustomerCatalog, claims.UserID)
	respondWithJSON(w, http.StatusNoContent, nil)
}

// LoginPrompt answers GET on the sign-in path, so the unauthenticated root
// redirect lands on a real resource instead of a 405. It carries the same
// challenge as any other unauthenticated request.
func (h *HTTPHandler) LoginPrompt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="paint-catalog-service"`)
	respondWithError(w, http.StatusUnauthorized, "Sign in by POSTing email and password to this path")
}

// RootRedirect sends a signed-in caller to their role's default screen and
// everyone else to sign-in.
func (h *HTTPHandler) RootRedirect(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		if claims, err := h.tokens.Validate(token); err == nil {
			if claims.EffectiveRole() == domain.RoleAdmin {
				http.Redirect(w, r, "/api/v1/admin/dashboard", http.StatusFound)
			} else {
				http.Redirect(w, r, "/api/v1/customer/products", http.StatusFound)
			}
			return
		}
	}
	http.Redirect(w, r, "/api/v1/auth/login", http.StatusFound)
}

// NotFound answers every unknown or impermissible path. It must never
// escalate to a 500: the shell stays up no matter what was requested.
func (h *HTTPHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusNotFound, ErrorResponse{
		Error: fmt.Sprintf("No resource at %s", r.URL.Path),
		Code:  "not_found",
	})
}

// --- Route registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.RootRedirect)
	r.Get("/api/v1/auth/login", h.LoginPrompt)
	r.Post("/api/v1/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Post("/api/v1/auth/logout", h.Logout)

		r.Route("/api/v1/admin", func(r chi.Router) {
			r.Use(h.RequireRole(domain.RoleAdmin))

			r.Get("/dashboard", h.GetDashboard)
			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)

			r.Route("/brands", func(r chi.Router) {
				r.Post("/", h.CreateBrand)
				r.Get("/", h.ListBrands)
				r.Route("/{brandId}", func(r chi.Router) {
					r.Put("/", h.UpdateBrand)
					r.Delete("/", h.ArchiveBrand)
					r.Route("/sub-brands", func(r chi.Router) {
						r.Post("/", h.CreateSubBrand)
						r.Get("/", h.ListSubBrands)
						r.Put("/{subBrandId}", h.UpdateSubBrand)
						r.Delete("/{subBrandId}", h.ArchiveSubBrand)
					})
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", h.CreateCategory)
				r.Get("/", h.ListCategories)
				r.Put("/{categoryId}", h.UpdateCategory)
				r.Delete("/{categoryId}", h.ArchiveCategory)
			})

			r.Route("/sizes", func(r chi.Router) {
				r.Post("/", h.CreateSize)
				r.Get("/", h.ListSizes)
				r.Put("/{sizeId}", h.UpdateSize)
				r.Delete("/{sizeId}", h.ArchiveSize)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", h.CreateProduct)
				r.Get("/", h.ListProducts)
				r.Route("/{productId}", func(r chi.Router) {
					r.Get("/", h.GetProductByID)
					r.Put("/", h.UpdateProduct)
					r.Delete("/", h.ArchiveProduct)
					r.Route("/variants", func(r chi.Router) {
						r.Post("/", h.CreateVariant)
						r.Get("/", h.ListVariants)
						// Before {variantId} so "sku" is not read as an id.
						r.Get("/sku", h.SuggestVariantSKU)
						r.Put("/{variantId}", h.UpdateVariant)
						r.Delete("/{variantId}", h.ArchiveVariant)
					})
				})
			})

			r.Route("/customers", func(r chi.Router) {
				r.Post("/", h.CreateCustomer)
				r.Get("/", h.ListCustomers)
				r.Put("/{customerId}", h.UpdateCustomer)
				r.Delete("/{customerId}", h.ArchiveCustomer)
			})

			r.Route("/pricelists", func(r chi.Router) {
				r.Post("/", h.CreatePricelist)
				r.Get("/", h.ListPricelists)
				r.Route("/{pricelistId}", func(r chi.Router) {
					r.Put("/", h.UpdatePricelist)
					r.Delete("/", h.ArchivePricelist)
					r.Get("/items", h.ListPriceEntries)
					r.Put("/items/{variantId}", h.UpsertPriceEntry)
				})
			})
		})

		// The customer subtree is open to every authenticated identity;
		// an identity with no linked customer record fails inside the
		// handler the same way an unassigned customer does.
		r.Route("/api/v1/customer", func(r chi.Router) {
			r.Get("/products", h.GetCustomerProducts)
		})
	})

	if mux, ok := r.(*chi.Mux); ok {
		mux.NotFound(h.NotFound)
		mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		})
	}
}
