package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_storefront/internal/client"
	"github.com/fjod/go_storefront/internal/domain"
)

type CatalogService interface {
	ListProducts(ctx context.Context, creds client.Credentials, filter client.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, creds client.Credentials, id int64) (*domain.Product, error)
	SearchProducts(ctx context.Context, creds client.Credentials, keyword string) ([]domain.Product, error)
	ListCategories(ctx context.Context, creds client.Credentials) ([]domain.Category, error)
}

type ProductHandler struct {
	catalog CatalogService
	timeout time.Duration
}

func NewProductHandler(catalog CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var filter client.ProductFilter
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || categoryID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_category_id", "categoryId must be a positive integer")
			return
		}
		filter.CategoryID = categoryID
	}
	filter.Search = r.URL.Query().Get("search")

	creds := getCredentialsFromContext(r.Context())
	products, err := h.catalog.ListProducts(ctx, creds, filter)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := parseIDParam(r, "product_id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	creds := getCredentialsFromContext(r.Context())
	product, err := h.catalog.GetProduct(ctx, creds, id)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		respondError(w, http.StatusBadRequest, "missing_keyword", "keyword query parameter is required")
		return
	}

	creds := getCredentialsFromContext(r.Context())
	products, err := h.catalog.SearchProducts(ctx, creds, keyword)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	creds := getCredentialsFromContext(r.Context())
	categories, err := h.catalog.ListCategories(ctx, creds)
	if err != nil {
		handleRemoteError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}
