package interfaces

import (
	"context"
	"time"

	"community-server/shared/models"

	"github.com/google/uuid"
)

// UserRepository defines persistence of user records.
// Every read returns the user joined with its role name.
type UserRepository interface {
	// CreateUser inserts a new user.
	// Returns models.ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user *models.NewUser) (*models.User, error)

	// CreateSoleRoleHolder inserts a user only if nobody holds user.RoleID yet.
	// The role row is locked for the duration of the check and insert.
	// Returns models.ErrRoleAlreadyHeld or models.ErrEmailAlreadyExists.
	CreateSoleRoleHolder(ctx context.Context, user *models.NewUser) (*models.User, error)

	// GetUserByEmail returns models.ErrUserNotFound if the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns models.ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetFirstUserByRole returns the oldest holder of the role or models.ErrUserNotFound.
	GetFirstUserByRole(ctx context.Context, role models.RoleName) (*models.User, error)

	CountUsersByRole(ctx context.Context, role models.RoleName) (int64, error)

	// DeleteUsersByRole removes every holder of the role and reports how many rows went away.
	DeleteUsersByRole(ctx context.Context, roleID uuid.UUID) (int64, error)

	// MarkEmailVerified flips is_email_verified and stamps the verification time.
	MarkEmailVerified(ctx context.Context, id uuid.UUID, at time.Time) error

	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// SetBanStatus bans (banned=true) or unbans a user. reason and until are cleared on unban.
	SetBanStatus(ctx context.Context, id uuid.UUID, banned bool, reason *string, until *time.Time) error
}
