// Package bootstrap prepares the store before the service accepts traffic:
// it seeds the role catalog and the configured system administrator.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"community-server/auth/internal/service"
	"community-server/shared/interfaces"
	"community-server/shared/models"

	"go.uber.org/zap"
)

// Deps are the collaborators Initialize needs.
type Deps struct {
	Users  interfaces.UserRepository
	Roles  interfaces.RoleRepository
	Hasher service.PasswordHasher
	Logger *zap.Logger
}

// SystemAdmin is the account created on first start.
// An empty Email or Password disables seeding.
type SystemAdmin struct {
	Email    string
	Name     string
	Password string
}

// Initialize seeds roles, then the system admin. Safe to call on every start.
func Initialize(ctx context.Context, deps Deps, admin SystemAdmin) error {
	log := deps.Logger.Named("Bootstrap")

	if err := EnsureRolesSeeded(ctx, deps.Roles, log); err != nil {
		return err
	}
	if err := EnsureSystemAdminSeeded(ctx, deps, admin, log); err != nil {
		return err
	}
	log.Info("Bootstrap completed")
	return nil
}

// EnsureRolesSeeded inserts the role catalog when the roles table is empty.
func EnsureRolesSeeded(ctx context.Context, roles interfaces.RoleRepository, log *zap.Logger) error {
	catalog := models.RoleCatalog()
	seeded, err := roles.SeedRoles(ctx, catalog)
	if err != nil {
		log.Error("Failed to seed roles", zap.Error(err))
		return fmt.Errorf("seed roles: %w", err)
	}
	if seeded {
		log.Info("Role catalog seeded", zap.Int("roles", len(catalog)))
	} else {
		log.Debug("Roles already present, seeding skipped")
	}
	return nil
}

// EnsureSystemAdminSeeded creates the system admin when nobody holds the role.
// Misconfiguration is logged and skipped; store failures are returned.
func EnsureSystemAdminSeeded(ctx context.Context, deps Deps, admin SystemAdmin, log *zap.Logger) error {
	admin.Email = strings.TrimSpace(admin.Email)
	admin.Name = strings.TrimSpace(admin.Name)
	if admin.Email == "" || admin.Password == "" {
		log.Warn("System admin credentials are not configured, skipping seeding")
		return nil
	}
	if admin.Name == "" {
		admin.Name = "System Administrator"
	}
	logFields := []zap.Field{zap.String("email", admin.Email)}

	holders, err := deps.Users.CountUsersByRole(ctx, models.RoleSystemAdmin)
	if err != nil {
		return fmt.Errorf("count system admins: %w", err)
	}
	if holders > 0 {
		log.Debug("System admin already exists", logFields...)
		return nil
	}

	if existing, err := deps.Users.GetUserByEmail(ctx, admin.Email); err == nil {
		log.Warn("Configured system admin email belongs to another account, skipping",
			append(logFields, zap.String("userID", existing.ID.String()), zap.String("role", existing.RoleName.String()))...)
		return nil
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return fmt.Errorf("lookup system admin email: %w", err)
	}

	if err := service.ValidateCreateAdmin(service.CreateAdminInput{Email: admin.Email, Name: admin.Name, Password: admin.Password}); err != nil {
		log.Error("Configured system admin is invalid, skipping", append(logFields, zap.Error(err))...)
		return nil
	}

	role, err := deps.Roles.GetRoleByName(ctx, models.RoleSystemAdmin)
	if err != nil {
		return fmt.Errorf("system admin role: %w", err)
	}
	hash, err := deps.Hasher.Hash(admin.Password)
	if err != nil {
		return err
	}

	created, err := deps.Users.CreateSoleRoleHolder(ctx, &models.NewUser{
		Email:           admin.Email,
		Name:            admin.Name,
		PasswordHash:    hash,
		RoleID:          role.ID,
		IsEmailVerified: true,
	})
	if err != nil {
		// Другой экземпляр успел раньше
		if errors.Is(err, models.ErrRoleAlreadyHeld) || errors.Is(err, models.ErrEmailAlreadyExists) {
			log.Info("System admin seeded concurrently, skipping", logFields...)
			return nil
		}
		return fmt.Errorf("create system admin: %w", err)
	}

	log.Info("System admin created", append(logFields, zap.String("userID", created.ID.String()))...)
	return nil
}
