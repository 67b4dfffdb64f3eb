package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const AuthTokenPrefix = "authToken:"

// ErrSessionNotFound is returned when a user has no stored session token.
var ErrSessionNotFound = errors.New("session not found")

// StoreSessionToken stores the hash of a user's token in the auth cache.
// Issuing a new token replaces the old one, so each account has at most
// one live session.
func StoreSessionToken(ctx context.Context, client *redis.Client, userCode, tokenHash string, ttl time.Duration) error {
	if err := client.Set(ctx, AuthTokenPrefix+userCode, tokenHash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

// VerifySessionToken checks a presented token hash against the stored one.
func VerifySessionToken(ctx context.Context, client *redis.Client, userCode, tokenHash string) error {
	stored, err := client.Get(ctx, AuthTokenPrefix+userCode).Result()
	if err == redis.Nil {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read session token: %w", err)
	}
	if stored != tokenHash {
		return errors.New("session token mismatch")
	}
	return nil
}

// RevokeSessionToken deletes a user's stored session token.
func RevokeSessionToken(ctx context.Context, client *redis.Client, userCode string) error {
	if err := client.Del(ctx, AuthTokenPrefix+userCode).Err(); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	return nil
}
