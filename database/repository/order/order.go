package orderRepo

import (
	"context"
	"errors"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/models"
)

// Failures surfaced by the guarded updates and transactions. The service
// layer maps these onto its own error taxonomy.
var (
	ErrNotFound           = errors.New("order not found")
	ErrStatusConflict     = errors.New("order status does not allow this transition")
	ErrTokenMismatch      = errors.New("pickup token mismatch")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrReviewForbidden    = errors.New("order cannot be reviewed")
)

// StockDecrement is one product's share of a checkout: the stock to reserve
// and the sales counters to bump.
type StockDecrement struct {
	ProductID  string
	CategoryID string
	Quantity   int
}

// ProductSales is an analytics row: units and revenue for one product.
type ProductSales struct {
	Name              string `bson:"_id"`
	TotalSales        int64  `bson:"totalSales"`
	TotalRevenueCents int64  `bson:"totalRevenueCents"`
}

// MonthlyRevenue is an analytics row: units and revenue for one month.
type MonthlyRevenue struct {
	Month             int   `bson:"_id"`
	TotalSales        int64 `bson:"totalSales"`
	TotalRevenueCents int64 `bson:"totalRevenueCents"`
}

// OrderRepository owns the order aggregate and every transition that must
// be atomic across collections (credit, stock, order rows). All transition
// methods serialize through status compare-and-set filters, so of two
// concurrent terminal transitions exactly one wins.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userCode string) ([]models.Order, error)
	// ListPending returns all pending orders except the given user's own.
	ListPending(ctx context.Context, excludeUserCode string) ([]models.Order, error)
	// SearchByProductName finds the user's orders containing a product
	// whose snapshotted name matches the query.
	SearchByProductName(ctx context.Context, userCode, query string) ([]models.Order, error)

	// CreateCheckout runs the checkout transaction: guarded credit debit,
	// guarded stock decrements with sales-counter increments, order
	// insert, cart clear. Any failure aborts with no partial effect.
	CreateCheckout(ctx context.Context, o *models.Order, totalCents int64, decrements []StockDecrement) error
	// ConfirmPickup transitions pending -> completed iff the submitted
	// token equals the stored one exactly.
	ConfirmPickup(ctx context.Context, orderID, qrCode, sellerCode string, arrival time.Time) error
	// CancelForStock transitions pending -> cancelled, appending the
	// cancel mirror lines and refunding refundCents to the owner.
	// Original item lines are never removed. Stock is not re-incremented.
	CancelForStock(ctx context.Context, orderID string, cancelItems []models.OrderItem, refundCents int64) error
	// DeleteRefund removes a pending order and refunds its full cost.
	DeleteRefund(ctx context.Context, orderID, userCode string, refundCents int64) error
	// Refund transitions pending -> refunded (admin surface only).
	Refund(ctx context.Context, orderID string, refundCents int64) error
	// Hide soft-hides a non-pending order from the user's history.
	Hide(ctx context.Context, orderID, userCode string) error
	// SetReview stores a rating/comment on a completed, visible order.
	SetReview(ctx context.Context, orderID, userCode string, rating int, comment string) error

	// TopProducts aggregates completed-order sales of a seller since the
	// given time, best sellers first.
	TopProducts(ctx context.Context, sellerCode string, since time.Time, limit int) ([]ProductSales, error)
	// RevenueByMonth aggregates a seller's completed-order revenue per
	// month of the given year.
	RevenueByMonth(ctx context.Context, sellerCode string, year int) ([]MonthlyRevenue, error)
}
