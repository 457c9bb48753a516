package interfaces

import (
	"context"

	"community-server/shared/models"

	"github.com/google/uuid"
)

// SiteSettingsRepository stores the site settings row.
type SiteSettingsRepository interface {
	// Get returns the first settings row or models.ErrNotFound.
	Get(ctx context.Context) (*models.SiteSettings, error)
	Create(ctx context.Context, input models.SiteSettingsInput) (*models.SiteSettings, error)
	// Update applies the non-nil fields. Returns models.ErrNotFound for an unknown id.
	Update(ctx context.Context, id uuid.UUID, input models.SiteSettingsInput) (*models.SiteSettings, error)
}
