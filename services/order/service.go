// Package order implements the order ledger: checkout, pickup
// confirmation, cancellation, deletion, refunds and history views.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	cartRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/cart"
	orderRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/order"
	productRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/product"
	userRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/user"
	"github.com/KevinDarioIguaran/LCLGSC/models"
	"github.com/KevinDarioIguaran/LCLGSC/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderEnqueuer schedules the pickup reminder after a checkout commits.
// Enqueue failures are logged, never surfaced to the buyer.
type ReminderEnqueuer interface {
	EnqueuePickupReminder(orderID, userCode string, delay time.Duration) error
}

// SessionRevoker invalidates a user's auth token server-side.
type SessionRevoker interface {
	Revoke(ctx context.Context, userCode string) error
}

// OrderService defines business logic for the order ledger.
type OrderService interface {
	Checkout(ctx context.Context, userCode, schoolAddress string) (*models.Order, error)
	ConfirmPickup(ctx context.Context, orderID, qrCode, sellerCode string) error
	CancelForStock(ctx context.Context, orderID, sellerCode string, productIDs []string) error
	Delete(ctx context.Context, orderID, userCode string) error
	Hide(ctx context.Context, orderID, userCode string) error
	Review(ctx context.Context, orderID, userCode string, rating int, comment string) error
	AdminRefund(ctx context.Context, orderID string) error

	Get(ctx context.Context, orderID, userCode string) (*models.Order, error)
	// PendingDetail is the seller's view of one order awaiting pickup.
	PendingDetail(ctx context.Context, orderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userCode string) ([]models.Order, error)
	Search(ctx context.Context, userCode, query string) ([]models.Order, error)
	PendingForSeller(ctx context.Context, sellerCode string) ([]models.Order, error)
	QRImage(ctx context.Context, orderID, userCode string) ([]byte, error)
}

// DefaultOrderService is the production implementation.
type DefaultOrderService struct {
	Orders    orderRepo.OrderRepository
	Users     userRepo.UserRepository
	Products  productRepo.ProductRepository
	Carts     cartRepo.CartRepository
	Reminders ReminderEnqueuer
	Sessions  SessionRevoker
	Logger    *zap.Logger

	DeliveryFeeCents            int64
	RefundFullOnCancel          bool
	DeactivateOnForbiddenDelete bool
	PickupReminderDelay         time.Duration
}

// Checkout turns the user's cart into a pending order. Credit and stock
// are validated here for an early answer and enforced again by the guarded
// updates inside the transaction.
func (s *DefaultOrderService) Checkout(ctx context.Context, userCode, schoolAddress string) (*models.Order, error) {
	if !models.ValidSchoolAddress(schoolAddress) {
		return nil, NewValidationError("unknown delivery address %q", schoolAddress)
	}

	cart, err := s.Carts.Get(ctx, userCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil || cart.Empty() {
		return nil, NewValidationError("cart is empty")
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	decrements := make([]orderRepo.StockDecrement, 0, len(cart.Items))
	for _, line := range cart.Items {
		p, err := s.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrNotFound) {
				return nil, NewValidationError("product %s is no longer in the catalog", line.ProductID)
			}
			return nil, fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
		}
		if p.SellerCode == userCode {
			return nil, NewValidationError("cannot buy your own product %q", p.Name)
		}
		if !p.Available {
			return nil, NewValidationError("product %q is not available", p.Name)
		}
		if p.Stock < line.Quantity {
			return nil, NewInsufficientError("stock", "not enough stock of %q", p.Name)
		}
		items = append(items, models.OrderItem{
			ProductID:  p.ID,
			Name:       p.Name,
			SellerCode: p.SellerCode,
			PriceCents: p.PriceCents,
			Quantity:   line.Quantity,
		})
		decrements = append(decrements, orderRepo.StockDecrement{
			ProductID:  p.ID,
			CategoryID: p.CategoryID,
			Quantity:   line.Quantity,
		})
	}

	o := &models.Order{
		ID:            uuid.New().String(),
		UserCode:      userCode,
		Created:       time.Now(),
		Status:        models.OrderStatusPending,
		Paid:          true,
		SchoolAddress: schoolAddress,
		QRCodeData:    uuid.New().String(),
		Items:         items,
	}
	total := o.TotalCents(s.DeliveryFeeCents)

	user, err := s.Users.GetByCode(ctx, userCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.CreditCents < total {
		return nil, NewInsufficientError("credit", "insufficient credit: need %d, have %d", total, user.CreditCents)
	}

	if err := s.Orders.CreateCheckout(ctx, o, total, decrements); err != nil {
		switch {
		case errors.Is(err, orderRepo.ErrInsufficientCredit):
			return nil, NewInsufficientError("credit", "insufficient credit")
		case errors.Is(err, orderRepo.ErrInsufficientStock):
			return nil, NewInsufficientError("stock", "a product ran out of stock during checkout")
		default:
			return nil, fmt.Errorf("checkout failed: %w", err)
		}
	}

	if s.Reminders != nil {
		if err := s.Reminders.EnqueuePickupReminder(o.ID, userCode, s.PickupReminderDelay); err != nil {
			s.Logger.Warn("failed to enqueue pickup reminder",
				zap.String("orderID", o.ID), zap.Error(err))
		}
	}
	return o, nil
}

// ConfirmPickup completes a pending order when the seller scans the exact
// pickup token.
func (s *DefaultOrderService) ConfirmPickup(ctx context.Context, orderID, qrCode, sellerCode string) error {
	if orderID == "" || qrCode == "" {
		return NewValidationError("order id and QR code are required")
	}
	err := s.Orders.ConfirmPickup(ctx, orderID, qrCode, sellerCode, time.Now())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orderRepo.ErrNotFound):
		return NewValidationError("order not found")
	case errors.Is(err, orderRepo.ErrTokenMismatch):
		return NewConflictError("QR code does not match this order")
	case errors.Is(err, orderRepo.ErrStatusConflict):
		return NewConflictError("order is not pending")
	default:
		return fmt.Errorf("failed to confirm pickup: %w", err)
	}
}

// CancelForStock cancels a pending order over a selection of its products,
// mirroring each selected line into cancelItems. The refund policy is full
// total by default; the cancelled-lines-only policy is a deployment switch.
func (s *DefaultOrderService) CancelForStock(ctx context.Context, orderID, sellerCode string, productIDs []string) error {
	if len(productIDs) == 0 {
		return NewValidationError("select at least one product to cancel")
	}

	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return NewValidationError("order not found")
		}
		return fmt.Errorf("failed to load order: %w", err)
	}
	if o.Status != models.OrderStatusPending {
		return NewConflictError("order is not pending")
	}

	cancelItems := make([]models.OrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		if item := o.Item(id); item != nil {
			cancelItems = append(cancelItems, *item)
		}
	}
	if len(cancelItems) == 0 {
		return NewValidationError("none of the selected products belong to this order")
	}

	var refund int64
	if o.Paid {
		if s.RefundFullOnCancel {
			refund = o.TotalCents(s.DeliveryFeeCents)
		} else {
			for _, item := range cancelItems {
				refund += item.CostCents()
			}
		}
	}

	err = s.Orders.CancelForStock(ctx, orderID, cancelItems, refund)
	switch {
	case err == nil:
		s.Logger.Info("order cancelled for stock",
			zap.String("orderID", orderID),
			zap.String("sellerCode", sellerCode),
			zap.Int64("refundCents", refund))
		return nil
	case errors.Is(err, orderRepo.ErrStatusConflict):
		return NewConflictError("order is not pending")
	case errors.Is(err, orderRepo.ErrNotFound):
		return NewValidationError("order not found")
	default:
		return fmt.Errorf("failed to cancel order: %w", err)
	}
}

// Delete removes the owner's pending order and refunds its full cost.
// Attempting to delete a non-pending order is refused; deployments can
// additionally deactivate the offending account and revoke its session.
func (s *DefaultOrderService) Delete(ctx context.Context, orderID, userCode string) error {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return NewValidationError("order not found")
		}
		return fmt.Errorf("failed to load order: %w", err)
	}
	if o.UserCode != userCode {
		return NewValidationError("order not found")
	}
	if o.Status != models.OrderStatusPending {
		if s.DeactivateOnForbiddenDelete {
			s.punishForbiddenDelete(ctx, userCode, orderID)
		}
		return NewConflictError("only pending orders can be deleted")
	}

	var refund int64
	if o.Paid {
		refund = o.TotalCents(s.DeliveryFeeCents)
	}

	err = s.Orders.DeleteRefund(ctx, orderID, userCode, refund)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orderRepo.ErrStatusConflict):
		if s.DeactivateOnForbiddenDelete {
			s.punishForbiddenDelete(ctx, userCode, orderID)
		}
		return NewConflictError("only pending orders can be deleted")
	case errors.Is(err, orderRepo.ErrNotFound):
		return NewValidationError("order not found")
	default:
		return fmt.Errorf("failed to delete order: %w", err)
	}
}

func (s *DefaultOrderService) punishForbiddenDelete(ctx context.Context, userCode, orderID string) {
	s.Logger.Warn("forbidden delete attempt, deactivating account",
		zap.String("userCode", userCode), zap.String("orderID", orderID))
	if err := s.Users.SetActive(ctx, userCode, false); err != nil {
		s.Logger.Error("failed to deactivate user", zap.String("userCode", userCode), zap.Error(err))
	}
	if s.Sessions != nil {
		if err := s.Sessions.Revoke(ctx, userCode); err != nil {
			s.Logger.Error("failed to revoke session", zap.String("userCode", userCode), zap.Error(err))
		}
	}
}

// Hide soft-hides a delivered or cancelled order from the owner's history.
func (s *DefaultOrderService) Hide(ctx context.Context, orderID, userCode string) error {
	err := s.Orders.Hide(ctx, orderID, userCode)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orderRepo.ErrNotFound):
		return NewValidationError("order not found")
	case errors.Is(err, orderRepo.ErrStatusConflict):
		return NewConflictError("pending orders cannot be hidden")
	default:
		return fmt.Errorf("failed to hide order: %w", err)
	}
}

// Review stores a rating and comment on a completed, visible order.
func (s *DefaultOrderService) Review(ctx context.Context, orderID, userCode string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return NewValidationError("rating must be between 1 and 5")
	}
	err := s.Orders.SetReview(ctx, orderID, userCode, rating, comment)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orderRepo.ErrNotFound):
		return NewValidationError("order not found")
	case errors.Is(err, orderRepo.ErrReviewForbidden):
		return NewConflictError("order cannot be reviewed")
	default:
		return fmt.Errorf("failed to save review: %w", err)
	}
}

// AdminRefund moves a pending order to refunded and returns the credit.
func (s *DefaultOrderService) AdminRefund(ctx context.Context, orderID string) error {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return NewValidationError("order not found")
		}
		return fmt.Errorf("failed to load order: %w", err)
	}
	if !CanTransition(o.Status, models.OrderStatusRefunded) {
		return NewConflictError("order is not pending")
	}

	var refund int64
	if o.Paid {
		refund = o.TotalCents(s.DeliveryFeeCents)
	}

	err = s.Orders.Refund(ctx, orderID, refund)
	switch {
	case err == nil:
		s.Logger.Info("order refunded", zap.String("orderID", orderID), zap.Int64("refundCents", refund))
		return nil
	case errors.Is(err, orderRepo.ErrStatusConflict):
		return NewConflictError("order is not pending")
	case errors.Is(err, orderRepo.ErrNotFound):
		return NewValidationError("order not found")
	default:
		return fmt.Errorf("failed to refund order: %w", err)
	}
}

// Get returns one of the owner's orders.
func (s *DefaultOrderService) Get(ctx context.Context, orderID, userCode string) (*models.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return nil, NewValidationError("order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if o.UserCode != userCode {
		return nil, NewValidationError("order not found")
	}
	return o, nil
}

// PendingDetail returns an order for the pickup counter. Orders already
// transitioned are not shown there.
func (s *DefaultOrderService) PendingDetail(ctx context.Context, orderID string) (*models.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotFound) {
			return nil, NewValidationError("order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if o.Status != models.OrderStatusPending {
		return nil, NewConflictError("order is not pending")
	}
	return o, nil
}

// ListByUser returns the owner's visible order history, newest first.
func (s *DefaultOrderService) ListByUser(ctx context.Context, userCode string) ([]models.Order, error) {
	orders, err := s.Orders.ListByUser(ctx, userCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	visible := orders[:0]
	for _, o := range orders {
		if !o.DonotShow {
			visible = append(visible, o)
		}
	}
	return visible, nil
}

// Search filters the owner's visible history by snapshotted product name.
func (s *DefaultOrderService) Search(ctx context.Context, userCode, query string) ([]models.Order, error) {
	if query == "" {
		return s.ListByUser(ctx, userCode)
	}
	orders, err := s.Orders.SearchByProductName(ctx, userCode, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}
	visible := orders[:0]
	for _, o := range orders {
		if !o.DonotShow {
			visible = append(visible, o)
		}
	}
	return visible, nil
}

// PendingForSeller lists pending orders awaiting pickup, excluding the
// seller's own purchases.
func (s *DefaultOrderService) PendingForSeller(ctx context.Context, sellerCode string) ([]models.Order, error) {
	orders, err := s.Orders.ListPending(ctx, sellerCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}
	return orders, nil
}

// QRImage renders the owner's pickup token as a PNG. Only pending orders
// have a scannable code.
func (s *DefaultOrderService) QRImage(ctx context.Context, orderID, userCode string) ([]byte, error) {
	o, err := s.Get(ctx, orderID, userCode)
	if err != nil {
		return nil, err
	}
	if o.Status != models.OrderStatusPending {
		return nil, NewConflictError("order has no active pickup code")
	}
	png, err := utils.GenerateQRPNG(o.QRCodeData)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}
