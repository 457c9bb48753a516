package service

import (
	"context"

	"community-server/shared/models"

	"github.com/google/uuid"
)

// SystemService manages the admin account and site settings.
// Admin operations are reserved to the system admin.
type SystemService interface {
	IsSystemAdmin(ctx context.Context, userID uuid.UUID) (bool, error)

	GetAdmin(ctx context.Context, requesterID uuid.UUID) (*AdminStatus, error)
	CreateAdmin(ctx context.Context, requesterID uuid.UUID, in CreateAdminInput) (*models.AdminSummary, error)
	DeleteAdmin(ctx context.Context, requesterID uuid.UUID) (int64, error)

	GetConfig(ctx context.Context) (*models.SiteSettings, error)
	CreateConfig(ctx context.Context, requesterID uuid.UUID, in models.SiteSettingsInput) (*models.SiteSettings, error)
	UpdateConfig(ctx context.Context, requesterID, id uuid.UUID, in models.SiteSettingsInput) (*models.SiteSettings, error)
}

// AdminStatus reports whether the admin account exists.
type AdminStatus struct {
	Exists bool                 `json:"exists"`
	Admin  *models.AdminSummary `json:"admin"`
}
