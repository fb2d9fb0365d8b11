package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fjod/go_storefront/internal/domain"
)

// ProductFilter narrows a product listing. Zero value lists everything.
type ProductFilter struct {
	CategoryID int64
	Search     string
}

func (c *Client) ListProducts(ctx context.Context, creds Credentials, filter ProductFilter) ([]domain.Product, error) {
	query := url.Values{}
	if filter.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatInt(filter.CategoryID, 10))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var products []domain.Product
	if err := c.do(ctx, creds, http.MethodGet, "/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, creds Credentials, id int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, creds, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) SearchProducts(ctx context.Context, creds Credentials, keyword string) ([]domain.Product, error) {
	query := url.Values{"keyword": {keyword}}

	var products []domain.Product
	if err := c.do(ctx, creds, http.MethodGet, "/products/search", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ListCategories(ctx context.Context, creds Credentials) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, creds, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
