// Package user implements accounts: registration by school code, login,
// session revocation and credit recharges.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/user"
	"github.com/KevinDarioIguaran/LCLGSC/models"
	"github.com/KevinDarioIguaran/LCLGSC/utils"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL bounds a session; the JWT and the stored hash expire
// together.
const DefaultTokenTTL = 72 * time.Hour

// AuthResponse contains the user's code and the session JWT.
type AuthResponse struct {
	Code  string `json:"code"`
	Token string `json:"token"`
}

// RegisterInput carries the registration form. The secret code is handed
// out by the cooperative and gates signup; login needs only code and
// password.
type RegisterInput struct {
	Code       string `json:"code"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Password   string `json:"password"`
	SecretCode string `json:"secret_code"`
}

// UserService defines business logic for account operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResponse, error)
	Authenticate(ctx context.Context, code, password string) (*AuthResponse, error)
	GetProfile(ctx context.Context, code string) (*models.User, error)
	Revoke(ctx context.Context, userCode string) error
	// RechargeCredit tops up a buyer's balance, refusing amounts that
	// would pass the account cap.
	RechargeCredit(ctx context.Context, userCode string, amountCents int64) error

	ListUsers(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, code string, active bool) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo           userRepo.UserRepository
	Auth           *redis.Client
	CreditCapCents int64
	TokenTTL       time.Duration
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultTokenTTL
}

// Register validates the form, hashes the password, persists the account
// and opens a session.
func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	if in.Code == "" || in.Password == "" || in.SecretCode == "" {
		return nil, fmt.Errorf("code, password and secret code are required")
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("first and last name are required")
	}

	existing, err := s.Repo.GetByCode(ctx, in.Code)
	if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user with code %s already exists", in.Code)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &models.User{
		Code:         in.Code,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hashed),
		SecretCode:   in.SecretCode,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.openSession(ctx, u.Code)
}

// Authenticate verifies the code and password and opens a session. A
// deactivated account cannot log in.
func (s *DefaultUserService) Authenticate(ctx context.Context, code, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if !u.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	return s.openSession(ctx, u.Code)
}

// openSession issues a JWT and stores its hash, replacing any live session.
func (s *DefaultUserService) openSession(ctx context.Context, code string) (*AuthResponse, error) {
	token, err := utils.GenerateToken(code, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := utils.StoreSessionToken(ctx, s.Auth, code, utils.HashToken(token), s.tokenTTL()); err != nil {
		return nil, err
	}
	return &AuthResponse{Code: code, Token: token}, nil
}

// GetProfile returns a safe view of the account.
func (s *DefaultUserService) GetProfile(ctx context.Context, code string) (*models.User, error) {
	u, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	u.PasswordHash = ""
	u.SecretCode = ""
	return u, nil
}

// Revoke invalidates the user's session token.
func (s *DefaultUserService) Revoke(ctx context.Context, userCode string) error {
	return utils.RevokeSessionToken(ctx, s.Auth, userCode)
}

// RechargeCredit tops up a balance through the guarded increment; the cap
// is enforced atomically at the storage layer.
func (s *DefaultUserService) RechargeCredit(ctx context.Context, userCode string, amountCents int64) error {
	if amountCents <= 0 {
		return fmt.Errorf("recharge amount must be positive")
	}
	err := s.Repo.AddCredit(ctx, userCode, amountCents, s.CreditCapCents)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, userRepo.ErrNotFound):
		return fmt.Errorf("user not found")
	case errors.Is(err, userRepo.ErrCreditCapExceeded):
		return fmt.Errorf("recharge would exceed the credit cap")
	default:
		return fmt.Errorf("failed to recharge credit: %w", err)
	}
}

// ListUsers returns all accounts (admin surface).
func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
		users[i].SecretCode = ""
	}
	return users, nil
}

// SetActive flips an account's active flag and drops its session when
// deactivating.
func (s *DefaultUserService) SetActive(ctx context.Context, code string, active bool) error {
	if err := s.Repo.SetActive(ctx, code, active); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return fmt.Errorf("user not found")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if !active {
		if err := s.Revoke(ctx, code); err != nil {
			utils.GetLogger().Warn("failed to revoke session on deactivation")
		}
	}
	return nil
}
