package shop

import (
	"context"
	"errors"
	"fmt"

	cartRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/cart"
	productRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/product"
	"github.com/KevinDarioIguaran/LCLGSC/models"
)

// CartLineView is a cart row joined with its live product data.
type CartLineView struct {
	Product       models.Product `json:"product"`
	Quantity      int            `json:"quantity"`
	SubtotalCents int64          `json:"subtotalCents"`
	// Unavailable flags a line whose product went off sale or under
	// stock after it was added; checkout will refuse it.
	Unavailable bool `json:"unavailable"`
}

// CartView is the rendered cart.
type CartView struct {
	Items      []CartLineView `json:"items"`
	TotalCents int64          `json:"totalCents"`
}

// CartService defines cart operations.
type CartService interface {
	Get(ctx context.Context, userCode string) (*CartView, error)
	Add(ctx context.Context, userCode, productID string, quantity int) error
	SetQuantity(ctx context.Context, userCode, productID string, quantity int) error
	Remove(ctx context.Context, userCode, productID string) error
}

// DefaultCartService is the production implementation.
type DefaultCartService struct {
	Carts    cartRepo.CartRepository
	Products productRepo.ProductRepository
}

// Get renders the cart with live prices and availability. Lines whose
// product disappeared from the catalog are dropped silently.
func (s *DefaultCartService) Get(ctx context.Context, userCode string) (*CartView, error) {
	cart, err := s.Carts.Get(ctx, userCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	view := &CartView{Items: []CartLineView{}}
	if cart == nil {
		return view, nil
	}

	for _, line := range cart.Items {
		p, err := s.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
		}
		row := CartLineView{
			Product:       *p,
			Quantity:      line.Quantity,
			SubtotalCents: p.PriceCents * int64(line.Quantity),
			Unavailable:   !p.Available || p.Stock < line.Quantity,
		}
		view.Items = append(view.Items, row)
		if !row.Unavailable {
			view.TotalCents += row.SubtotalCents
		}
	}
	return view, nil
}

// Add puts a product in the cart, incrementing the quantity when already
// present. Sellers cannot add their own products.
func (s *DefaultCartService) Add(ctx context.Context, userCode, productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return fmt.Errorf("product not found")
		}
		return fmt.Errorf("failed to load product: %w", err)
	}
	if p.SellerCode == userCode {
		return fmt.Errorf("cannot add your own product to the cart")
	}
	if !p.Available {
		return fmt.Errorf("product %q is not available", p.Name)
	}
	if p.Stock < quantity {
		return fmt.Errorf("not enough stock of %q", p.Name)
	}
	return s.Carts.AddLine(ctx, userCode, productID, quantity)
}

// SetQuantity replaces a line's quantity after a stock check.
func (s *DefaultCartService) SetQuantity(ctx context.Context, userCode, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, userCode, productID)
	}
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			return fmt.Errorf("product not found")
		}
		return fmt.Errorf("failed to load product: %w", err)
	}
	if p.Stock < quantity {
		return fmt.Errorf("not enough stock of %q", p.Name)
	}
	if err := s.Carts.SetQuantity(ctx, userCode, productID, quantity); err != nil {
		if errors.Is(err, cartRepo.ErrLineNotFound) {
			return fmt.Errorf("product is not in the cart")
		}
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}

// Remove drops a product from the cart.
func (s *DefaultCartService) Remove(ctx context.Context, userCode, productID string) error {
	if err := s.Carts.RemoveLine(ctx, userCode, productID); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}
