package service

import (
	"context"
	"time"

	"community-server/shared/models"

	"github.com/google/uuid"
)

// AuthService defines login, signup, email verification and moderation logic.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Signup(ctx context.Context, in SignupInput) (*SignupResult, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	GetMe(ctx context.Context, userID uuid.UUID) (*models.PublicUser, error)
	VerifySession(ctx context.Context, token string) (*models.Claims, error)

	BanUser(ctx context.Context, requesterID, targetID uuid.UUID, reason *string, until *time.Time) error
	UnbanUser(ctx context.Context, requesterID, targetID uuid.UUID) error

	GetPermissions(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) (*PermissionsResult, error)
	Can(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID, capability models.Capability) (bool, error)
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      models.RoleName `json:"role"`
}

// SignupResult describes the created account. A failed verification email
// does not undo the signup; it is reported through Warning.
type SignupResult struct {
	User                  models.PublicUser `json:"user"`
	VerificationEmailSent bool              `json:"verificationEmailSent"`
	Warning               string            `json:"warning,omitempty"`
}

// PermissionsResult is the effective permission set of a user.
type PermissionsResult struct {
	Role        models.RoleName      `json:"role"`
	Priority    int                  `json:"priority"`
	BoardID     *uuid.UUID           `json:"boardId,omitempty"`
	Permissions models.PermissionSet `json:"permissions"`
}
