package interfaces

import (
	"context"

	"community-server/shared/models"

	"github.com/google/uuid"
)

// RoleRepository provides access to the role catalog and role permissions.
type RoleRepository interface {
	CountRoles(ctx context.Context) (int64, error)

	// GetRoleByName returns models.ErrRoleNotFound when the role is not seeded.
	GetRoleByName(ctx context.Context, name models.RoleName) (*models.Role, error)

	// ListRoles returns roles ordered by priority, highest first.
	ListRoles(ctx context.Context) ([]models.Role, error)

	// SeedRoles inserts the catalog and a global permission row per role,
	// but only when the roles table is empty. It reports whether it inserted anything.
	SeedRoles(ctx context.Context, catalog []models.RoleDefinition) (bool, error)

	// ListPermissions returns every permission row of the role, global and board-scoped.
	ListPermissions(ctx context.Context, roleID uuid.UUID) ([]models.Permission, error)
}
