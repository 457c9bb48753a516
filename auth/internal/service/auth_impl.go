package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const signupEmailWarning = "account created, but the verification email could not be sent; request a new verification link"

type authServiceImpl struct {
	userRepo interfaces.UserRepository
	roleRepo interfaces.RoleRepository
	verifier *EmailVerifier
	hasher   PasswordHasher
	sessions SessionIssuer
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo interfaces.UserRepository,
	roleRepo interfaces.RoleRepository,
	verifier *EmailVerifier,
	hasher PasswordHasher,
	sessions SessionIssuer,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		roleRepo: roleRepo,
		verifier: verifier,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger.Named("AuthService"),
		now:      time.Now,
	}
}

// Login authenticates by email and password.
// Credentials are checked before account state, so a banned user with a
// wrong password only learns "invalid credentials".
func (s *authServiceImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := ValidateLogin(in); err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("email", in.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Info("Login failed: user not found")
			return nil, models.ErrInvalidCredentials
		}
		log.Error("Login failed: error fetching user", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		log.Info("Login failed: invalid password", zap.String("userID", user.ID.String()))
		return nil, models.ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		log.Info("Login refused: email not verified", zap.String("userID", user.ID.String()))
		return nil, models.ErrEmailNotVerified
	}
	if !user.IsActive {
		log.Info("Login refused: account disabled", zap.String("userID", user.ID.String()))
		return nil, models.ErrAccountDisabled
	}
	if user.IsSuspended(s.now()) {
		log.Info("Login refused: account suspended", zap.String("userID", user.ID.String()))
		return nil, models.ErrAccountSuspended
	}

	token, expiresAt, err := s.sessions.Issue(user.ID, user.Email)
	if err != nil {
		log.Error("Failed to issue session", zap.Error(err))
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		log.Warn("Failed to record last login", zap.Error(err))
	}

	log.Info("User logged in", zap.String("userID", user.ID.String()), zap.String("role", user.RoleName.String()))
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.RoleName,
	}, nil
}

// Signup creates an unverified account with the default role and sends the
// verification email. The account stays even if the email cannot be sent.
func (s *authServiceImpl) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := ValidateSignup(in); err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("email", in.Email))

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	role, err := s.roleRepo.GetRoleByName(ctx, models.DefaultSignupRole)
	if err != nil {
		log.Error("Default signup role is unavailable", zap.String("role", models.DefaultSignupRole.String()), zap.Error(err))
		return nil, fmt.Errorf("default role %q: %w", models.DefaultSignupRole, err)
	}

	user, err := s.userRepo.CreateUser(ctx, &models.NewUser{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		RoleID:       role.ID,
	})
	if err != nil {
		if errors.Is(err, models.ErrEmailAlreadyExists) {
			log.Info("Signup rejected: email already in use")
		}
		return nil, err
	}
	// Сохраняем имя роли, даже если репозиторий его не вернул.
	if user.RoleName == "" {
		user.RoleName = role.Name
	}

	result := &SignupResult{User: user.Public(), VerificationEmailSent: true}
	if err := s.verifier.Issue(ctx, user); err != nil {
		log.Warn("Signup committed without verification email", zap.String("userID", user.ID.String()), zap.Error(err))
		result.VerificationEmailSent = false
		result.Warning = signupEmailWarning
	}

	log.Info("User signed up", zap.String("userID", user.ID.String()))
	return result, nil
}

func (s *authServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	_, err := s.verifier.Redeem(ctx, token)
	return err
}

// ResendVerification issues a new link for an unverified account.
// It reports success for unknown and already verified emails, and when delivery fails.
func (s *authServiceImpl) ResendVerification(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email: cannot be blank", models.ErrValidation)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Debug("Resend requested for unknown email")
			return nil
		}
		return err
	}
	if user.IsEmailVerified {
		s.logger.Debug("Resend requested for verified account", zap.String("userID", user.ID.String()))
		return nil
	}
	if err := s.verifier.Issue(ctx, user); err != nil {
		// Ответ не должен отличаться от случая с неизвестным email
		s.logger.Error("Failed to resend verification email", zap.String("userID", user.ID.String()), zap.Error(err))
	}
	return nil
}

func (s *authServiceImpl) GetMe(ctx context.Context, userID uuid.UUID) (*models.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}

func (s *authServiceImpl) VerifySession(_ context.Context, token string) (*models.Claims, error) {
	claims, err := s.sessions.Validate(token)
	if err != nil {
		s.logger.Debug("Session verification failed", zap.Error(err))
		return nil, err
	}
	return claims, nil
}

// BanUser requires a moderator or above who strictly outranks the target.
func (s *authServiceImpl) BanUser(ctx context.Context, requesterID, targetID uuid.UUID, reason *string, until *time.Time) error {
	if until != nil && !until.After(s.now()) {
		return fmt.Errorf("%w: until: must be in the future", models.ErrValidation)
	}
	if err := s.authorizeModeration(ctx, requesterID, targetID); err != nil {
		return err
	}
	if err := s.userRepo.SetBanStatus(ctx, targetID, true, reason, until); err != nil {
		return err
	}
	s.logger.Info("User banned", zap.String("targetID", targetID.String()), zap.String("requesterID", requesterID.String()))
	return nil
}

func (s *authServiceImpl) UnbanUser(ctx context.Context, requesterID, targetID uuid.UUID) error {
	if err := s.authorizeModeration(ctx, requesterID, targetID); err != nil {
		return err
	}
	if err := s.userRepo.SetBanStatus(ctx, targetID, false, nil, nil); err != nil {
		return err
	}
	s.logger.Info("User unbanned", zap.String("targetID", targetID.String()), zap.String("requesterID", requesterID.String()))
	return nil
}

func (s *authServiceImpl) authorizeModeration(ctx context.Context, requesterID, targetID uuid.UUID) error {
	requester, err := s.userRepo.GetUserByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.ErrForbidden
		}
		return err
	}
	if !requester.RoleName.AtLeast(models.RoleModerator) {
		s.logger.Warn("Moderation denied: insufficient role", zap.String("requesterID", requesterID.String()), zap.String("role", requester.RoleName.String()))
		return models.ErrForbidden
	}

	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if !requester.RoleName.Outranks(target.RoleName) {
		s.logger.Warn("Moderation denied: target is not outranked",
			zap.String("requesterID", requesterID.String()),
			zap.String("targetID", targetID.String()),
		)
		return models.ErrForbidden
	}
	return nil
}

func (s *authServiceImpl) GetPermissions(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID) (*PermissionsResult, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.roleRepo.ListPermissions(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	set, _ := models.ResolvePermissions(rows, boardID)
	return &PermissionsResult{
		Role:        user.RoleName,
		Priority:    user.RoleName.Priority(),
		BoardID:     boardID,
		Permissions: set,
	}, nil
}

func (s *authServiceImpl) Can(ctx context.Context, userID uuid.UUID, boardID *uuid.UUID, capability models.Capability) (bool, error) {
	res, err := s.GetPermissions(ctx, userID, boardID)
	if err != nil {
		return false, err
	}
	return res.Permissions.Allows(capability), nil
}
