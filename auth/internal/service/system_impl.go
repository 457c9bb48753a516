package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type systemServiceImpl struct {
	userRepo     interfaces.UserRepository
	roleRepo     interfaces.RoleRepository
	settingsRepo interfaces.SiteSettingsRepository
	hasher       PasswordHasher
	logger       *zap.Logger
}

// NewSystemService creates a new SystemService.
func NewSystemService(
	userRepo interfaces.UserRepository,
	roleRepo interfaces.RoleRepository,
	settingsRepo interfaces.SiteSettingsRepository,
	hasher PasswordHasher,
	logger *zap.Logger,
) SystemService {
	return &systemServiceImpl{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		settingsRepo: settingsRepo,
		hasher:       hasher,
		logger:       logger.Named("SystemService"),
	}
}

// IsSystemAdmin is false for unknown users.
func (s *systemServiceImpl) IsSystemAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	role, err := s.roleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return models.IsSystemAdmin(role), nil
}

func (s *systemServiceImpl) roleOf(ctx context.Context, userID uuid.UUID) (models.RoleName, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil
		}
		return "", err
	}
	return user.RoleName, nil
}

func (s *systemServiceImpl) requireSystemAdmin(ctx context.Context, requesterID uuid.UUID, op string) error {
	ok, err := s.IsSystemAdmin(ctx, requesterID)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Warn("Forbidden admin operation", zap.String("op", op), zap.String("requesterID", requesterID.String()))
		return models.ErrForbidden
	}
	return nil
}

func (s *systemServiceImpl) requireAtLeast(ctx context.Context, requesterID uuid.UUID, min models.RoleName, op string) error {
	role, err := s.roleOf(ctx, requesterID)
	if err != nil {
		return err
	}
	if !role.AtLeast(min) {
		s.logger.Warn("Forbidden operation", zap.String("op", op), zap.String("requesterID", requesterID.String()), zap.String("role", role.String()))
		return models.ErrForbidden
	}
	return nil
}

func adminSummary(u *models.User) *models.AdminSummary {
	return &models.AdminSummary{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func (s *systemServiceImpl) GetAdmin(ctx context.Context, requesterID uuid.UUID) (*AdminStatus, error) {
	if err := s.requireSystemAdmin(ctx, requesterID, "GetAdmin"); err != nil {
		return nil, err
	}

	admin, err := s.userRepo.GetFirstUserByRole(ctx, models.RoleAdmin)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return &AdminStatus{Exists: false}, nil
		}
		return nil, err
	}
	return &AdminStatus{Exists: true, Admin: adminSummary(admin)}, nil
}

// CreateAdmin creates the single admin account, pre-verified.
func (s *systemServiceImpl) CreateAdmin(ctx context.Context, requesterID uuid.UUID, in CreateAdminInput) (*models.AdminSummary, error) {
	if err := s.requireSystemAdmin(ctx, requesterID, "CreateAdmin"); err != nil {
		return nil, err
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := ValidateCreateAdmin(in); err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("requesterID", requesterID.String()), zap.String("email", in.Email))

	count, err := s.userRepo.CountUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		log.Info("Admin creation rejected: admin already exists")
		return nil, models.ErrAdminAlreadyExists
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
		log.Info("Admin creation rejected: email in use")
		return nil, models.ErrEmailAlreadyExists
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	role, err := s.roleRepo.GetRoleByName(ctx, models.RoleAdmin)
	if err != nil {
		log.Error("Admin role is unavailable", zap.Error(err))
		return nil, fmt.Errorf("admin role: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	// Повторная проверка под блокировкой строки роли.
	created, err := s.userRepo.CreateSoleRoleHolder(ctx, &models.NewUser{
		Email:           in.Email,
		Name:            in.Name,
		PasswordHash:    hash,
		RoleID:          role.ID,
		IsEmailVerified: true,
	})
	if err != nil {
		if errors.Is(err, models.ErrRoleAlreadyHeld) {
			log.Info("Admin creation lost a race with another request")
			return nil, models.ErrAdminAlreadyExists
		}
		return nil, err
	}

	log.Info("Admin account created", zap.String("adminID", created.ID.String()))
	return adminSummary(created), nil
}

// DeleteAdmin removes every holder of the admin role.
func (s *systemServiceImpl) DeleteAdmin(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	if err := s.requireSystemAdmin(ctx, requesterID, "DeleteAdmin"); err != nil {
		return 0, err
	}

	role, err := s.roleRepo.GetRoleByName(ctx, models.RoleAdmin)
	if err != nil {
		s.logger.Error("Admin role is unavailable", zap.Error(err))
		return 0, fmt.Errorf("admin role: %w", err)
	}

	deleted, err := s.userRepo.DeleteUsersByRole(ctx, role.ID)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, models.ErrNoAdminToDelete
	}
	s.logger.Info("Admin account deleted", zap.String("requesterID", requesterID.String()), zap.Int64("deleted", deleted))
	return deleted, nil
}

func (s *systemServiceImpl) GetConfig(ctx context.Context) (*models.SiteSettings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *systemServiceImpl) CreateConfig(ctx context.Context, requesterID uuid.UUID, in models.SiteSettingsInput) (*models.SiteSettings, error) {
	if err := s.requireAtLeast(ctx, requesterID, models.RoleAdmin, "CreateConfig"); err != nil {
		return nil, err
	}
	if err := ValidateSiteConfig(in, true); err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Site settings created", zap.String("id", settings.ID.String()), zap.String("requesterID", requesterID.String()))
	return settings, nil
}

func (s *systemServiceImpl) UpdateConfig(ctx context.Context, requesterID, id uuid.UUID, in models.SiteSettingsInput) (*models.SiteSettings, error) {
	if err := s.requireAtLeast(ctx, requesterID, models.RoleAdmin, "UpdateConfig"); err != nil {
		return nil, err
	}
	if err := ValidateSiteConfig(in, false); err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Site settings updated", zap.String("id", id.String()), zap.String("requesterID", requesterID.String()))
	return settings, nil
}
