package userRepo

import (
	"context"
	"errors"

	"github.com/KevinDarioIguaran/LCLGSC/models"
)

var (
	// ErrNotFound is returned when no user matches the given code.
	ErrNotFound = errors.New("user not found")
	// ErrCreditCapExceeded is returned when a recharge would push the
	// balance above the configured cap.
	ErrCreditCapExceeded = errors.New("credit cap exceeded")
)

// UserRepository defines methods for user data access. Credit mutations are
// atomic at the storage layer; callers never read-modify-write balances.
type UserRepository interface {
	// GetByCode retrieves a user by its school-issued code.
	GetByCode(ctx context.Context, code string) (*models.User, error)
	// GetAll retrieves all users.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update modifies an existing user record.
	Update(ctx context.Context, user *models.User) error
	// AddCredit atomically increments the balance, failing with
	// ErrCreditCapExceeded when the result would pass capCents.
	AddCredit(ctx context.Context, code string, amountCents, capCents int64) error
	// SetActive flips the account's active flag.
	SetActive(ctx context.Context, code string, active bool) error
}
