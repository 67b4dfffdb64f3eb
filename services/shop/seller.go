package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	orderRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/order"
	productRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/product"
	"github.com/KevinDarioIguaran/LCLGSC/models"

	"github.com/google/uuid"
)

const topProductsLimit = 10

// ProductInput carries the seller product form.
type ProductInput struct {
	Name        string `json:"name"`
	CategoryID  string `json:"category_id"`
	PriceCents  int64  `json:"price_cents"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
	Available   *bool  `json:"available"`
}

// SellerAnalytics bundles the seller dashboard aggregations.
type SellerAnalytics struct {
	TopToday   []orderRepo.ProductSales   `json:"topToday"`
	TopMonthly []orderRepo.ProductSales   `json:"topMonthly"`
	ByMonth    []orderRepo.MonthlyRevenue `json:"byMonth"`
}

// SellerService defines the seller product tooling.
type SellerService interface {
	CreateProduct(ctx context.Context, sellerCode string, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, sellerCode, productID string, in ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, sellerCode, productID string) error
	MyProducts(ctx context.Context, sellerCode string) ([]models.Product, error)
	SearchMine(ctx context.Context, sellerCode, name, categoryID string) ([]models.Product, error)
	Analytics(ctx context.Context, sellerCode string, year int) (*SellerAnalytics, error)
}

// DefaultSellerService is the production implementation.
type DefaultSellerService struct {
	Products productRepo.ProductRepository
	Orders   orderRepo.OrderRepository
}

func (s *DefaultSellerService) validate(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if in.CategoryID == "" {
		return fmt.Errorf("category is required")
	}
	if in.PriceCents <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if in.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	return nil
}

// CreateProduct registers a new product under the seller's code.
func (s *DefaultSellerService) CreateProduct(ctx context.Context, sellerCode string, in ProductInput) (*models.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &models.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        Slugify(in.Name),
		PriceCents:  in.PriceCents,
		Description: in.Description,
		Stock:       in.Stock,
		SellerCode:  sellerCode,
		Available:   true,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// UpdateProduct edits one of the seller's own products. Ownership is
// enforced by the repository filter.
func (s *DefaultSellerService) UpdateProduct(ctx context.Context, sellerCode, productID string, in ProductInput) (*models.Product, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if p.SellerCode != sellerCode {
		return nil, fmt.Errorf("product not found")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Slug = Slugify(in.Name)
	p.CategoryID = in.CategoryID
	p.PriceCents = in.PriceCents
	p.Description = in.Description
	p.Stock = in.Stock
	p.ImageURL = in.ImageURL
	if in.Available != nil {
		p.Available = *in.Available
	}
	p.UpdatedAt = time.Now()

	if err := s.Products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes one of the seller's own products.
func (s *DefaultSellerService) DeleteProduct(ctx context.Context, sellerCode, productID string) error {
	if err := s.Products.Delete(ctx, productID, sellerCode); err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return fmt.Errorf("product not found")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// MyProducts lists the seller's products, newest first.
func (s *DefaultSellerService) MyProducts(ctx context.Context, sellerCode string) ([]models.Product, error) {
	return s.Products.ListBySeller(ctx, sellerCode)
}

// SearchMine filters the seller's products by name and category.
func (s *DefaultSellerService) SearchMine(ctx context.Context, sellerCode, name, categoryID string) ([]models.Product, error) {
	return s.Products.SearchBySeller(ctx, sellerCode, name, categoryID)
}

// Analytics builds the seller dashboard: best sellers of today and of the
// last 30 days plus per-month revenue for the given year.
func (s *DefaultSellerService) Analytics(ctx context.Context, sellerCode string, year int) (*SellerAnalytics, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.Orders.TopProducts(ctx, sellerCode, dayStart, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate today's sales: %w", err)
	}
	monthly, err := s.Orders.TopProducts(ctx, sellerCode, now.AddDate(0, 0, -30), topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly sales: %w", err)
	}
	byMonth, err := s.Orders.RevenueByMonth(ctx, sellerCode, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	return &SellerAnalytics{TopToday: today, TopMonthly: monthly, ByMonth: byMonth}, nil
}

// Slugify lowercases a name and collapses non-alphanumerics into hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
