// Package site manages the availability configuration behind the gate.
package site

import (
	"context"
	"fmt"
	"time"

	siteconfigRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/siteconfig"
	"github.com/KevinDarioIguaran/LCLGSC/models"
)

// SiteService defines the admin surface over the availability config.
type SiteService interface {
	Get(ctx context.Context) (*models.SiteConfig, error)
	Put(ctx context.Context, cfg *models.SiteConfig) error
	// Delete removes the configuration entirely, leaving the shop
	// always open.
	Delete(ctx context.Context) error
}

// DefaultSiteService is the production implementation.
type DefaultSiteService struct {
	Repo siteconfigRepo.Repository
}

// Get returns the current configuration, nil when none is set.
func (s *DefaultSiteService) Get(ctx context.Context) (*models.SiteConfig, error) {
	return s.Repo.Get(ctx)
}

// Put validates and stores the configuration, replacing any previous one.
func (s *DefaultSiteService) Put(ctx context.Context, cfg *models.SiteConfig) error {
	if cfg.ID == "" {
		cfg.ID = "site"
	}
	if err := cfg.Validate(time.Now()); err != nil {
		return err
	}
	cfg.UpdatedAt = time.Now()
	if err := s.Repo.Put(ctx, cfg); err != nil {
		return fmt.Errorf("failed to store site configuration: %w", err)
	}
	return nil
}

// Delete drops the configuration.
func (s *DefaultSiteService) Delete(ctx context.Context) error {
	if err := s.Repo.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete site configuration: %w", err)
	}
	return nil
}
