// Package shop implements the storefront surfaces: catalog browsing, the
// per-user cart and the seller product tooling.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	productRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/product"
	"github.com/KevinDarioIguaran/LCLGSC/models"
)

const (
	homeProductsPerCategory = 8
	relatedProductsLimit    = 6
	bestSellersLimit        = 20
)

// CategoryFeed is one home-page section: a category and its top products.
type CategoryFeed struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

// ProductDetail is a product page: the product plus related items from the
// same category.
type ProductDetail struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

// CatalogService defines read-side catalog operations.
type CatalogService interface {
	Home(ctx context.Context) ([]CategoryFeed, error)
	ProductDetail(ctx context.Context, productID string) (*ProductDetail, error)
	Search(ctx context.Context, name string) ([]CategoryFeed, error)
	SearchByCategory(ctx context.Context, slug string) (*CategoryFeed, error)
	BestSellers(ctx context.Context) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	SaveCategory(ctx context.Context, id, name string) (*models.Category, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Products productRepo.ProductRepository
}

// Home builds the landing feed: every category with its best-selling
// available products. Empty categories are skipped.
func (s *DefaultCatalogService) Home(ctx context.Context) ([]CategoryFeed, error) {
	categories, err := s.Products.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	feed := make([]CategoryFeed, 0, len(categories))
	for _, cat := range categories {
		products, err := s.Products.ListByCategory(ctx, cat.ID, homeProductsPerCategory)
		if err != nil {
			return nil, fmt.Errorf("failed to list products of %s: %w", cat.Slug, err)
		}
		if len(products) == 0 {
			continue
		}
		feed = append(feed, CategoryFeed{Category: cat, Products: products})
	}
	return feed, nil
}

// ProductDetail returns the product and related items of its category.
func (s *DefaultCatalogService) ProductDetail(ctx context.Context, productID string) (*ProductDetail, error) {
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	related, err := s.Products.ListByCategory(ctx, p.CategoryID, relatedProductsLimit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list related products: %w", err)
	}
	detail := &ProductDetail{Product: *p, Related: make([]models.Product, 0, relatedProductsLimit)}
	for _, r := range related {
		if r.ID == p.ID {
			continue
		}
		detail.Related = append(detail.Related, r)
		if len(detail.Related) == relatedProductsLimit {
			break
		}
	}
	return detail, nil
}

// Search matches available products by name and groups the hits by
// category, mirroring the home-feed shape.
func (s *DefaultCatalogService) Search(ctx context.Context, name string) ([]CategoryFeed, error) {
	products, err := s.Products.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("product search failed: %w", err)
	}

	categories, err := s.Products.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	byID := make(map[string]models.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	grouped := map[string][]models.Product{}
	order := []string{}
	for _, p := range products {
		if _, seen := grouped[p.CategoryID]; !seen {
			order = append(order, p.CategoryID)
		}
		grouped[p.CategoryID] = append(grouped[p.CategoryID], p)
	}

	feed := make([]CategoryFeed, 0, len(order))
	for _, id := range order {
		feed = append(feed, CategoryFeed{Category: byID[id], Products: grouped[id]})
	}
	return feed, nil
}

// SearchByCategory returns the available products of one category slug.
func (s *DefaultCatalogService) SearchByCategory(ctx context.Context, slug string) (*CategoryFeed, error) {
	cat, err := s.Products.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	products, err := s.Products.ListByCategory(ctx, cat.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list products of %s: %w", slug, err)
	}
	return &CategoryFeed{Category: *cat, Products: products}, nil
}

// BestSellers returns the storewide ranking of available products.
func (s *DefaultCatalogService) BestSellers(ctx context.Context) ([]models.Product, error) {
	products, err := s.Products.BestSellers(ctx, bestSellersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list best sellers: %w", err)
	}
	return products, nil
}

// Categories lists all categories.
func (s *DefaultCatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Products.Categories(ctx)
}

// SaveCategory creates or renames a category. The slug is derived from the
// name; an existing category keeps its sales counter.
func (s *DefaultCatalogService) SaveCategory(ctx context.Context, id, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return nil, fmt.Errorf("category id and name are required")
	}

	cat := &models.Category{ID: id, Name: name, Slug: Slugify(name)}
	existing, err := s.Products.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range existing {
		if c.ID == id {
			cat.SalesCount = c.SalesCount
			break
		}
	}

	if err := s.Products.UpsertCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}
