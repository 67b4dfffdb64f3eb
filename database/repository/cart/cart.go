package cartRepo

import (
	"context"
	"errors"

	"github.com/KevinDarioIguaran/LCLGSC/models"
)

// ErrLineNotFound is returned when updating a line that is not in the cart.
var ErrLineNotFound = errors.New("cart line not found")

// CartRepository defines access to the per-user cart document.
type CartRepository interface {
	// Get returns the user's cart, or (nil, nil) when none exists yet.
	Get(ctx context.Context, userCode string) (*models.Cart, error)
	// AddLine upserts a line, incrementing the quantity when the product
	// is already in the cart.
	AddLine(ctx context.Context, userCode, productID string, quantity int) error
	// SetQuantity replaces the quantity of an existing line.
	SetQuantity(ctx context.Context, userCode, productID string, quantity int) error
	// RemoveLine drops a product from the cart.
	RemoveLine(ctx context.Context, userCode, productID string) error
	// Clear empties the cart.
	Clear(ctx context.Context, userCode string) error
}
