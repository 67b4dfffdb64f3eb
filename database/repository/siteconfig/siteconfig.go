package siteconfigRepo

import (
	"context"

	"github.com/KevinDarioIguaran/LCLGSC/models"
)

// Repository exposes the availability configuration snapshot. Get returns
// (nil, nil) when no configuration exists; the gate treats that as
// always open.
type Repository interface {
	Get(ctx context.Context) (*models.SiteConfig, error)
	Put(ctx context.Context, cfg *models.SiteConfig) error
	Delete(ctx context.Context) error
}
