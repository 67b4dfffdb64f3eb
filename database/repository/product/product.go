package productRepo

import (
	"context"
	"errors"

	"github.com/KevinDarioIguaran/LCLGSC/models"
)

// ErrNotFound is returned when no product or category matches.
var ErrNotFound = errors.New("product not found")

// ProductRepository defines catalog data access. Stock is mutated only by
// the checkout transaction in the order repository; this interface reads
// stock and maintains everything else.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id, sellerCode string) error

	// SearchByName matches available products by case-insensitive name.
	SearchByName(ctx context.Context, name string) ([]models.Product, error)
	// ListByCategory returns available products of a category, best
	// sellers first.
	ListByCategory(ctx context.Context, categoryID string, limit int) ([]models.Product, error)
	// ListBySeller returns the seller's available products, newest first.
	ListBySeller(ctx context.Context, sellerCode string) ([]models.Product, error)
	// SearchBySeller filters the seller's products by name and category.
	SearchBySeller(ctx context.Context, sellerCode, name, categoryID string) ([]models.Product, error)
	// BestSellers returns available products ranked by sales.
	BestSellers(ctx context.Context, limit int) ([]models.Product, error)

	Categories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	UpsertCategory(ctx context.Context, c *models.Category) error
}
