package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultVerificationTTL - срок жизни токена подтверждения по умолчанию.
const DefaultVerificationTTL = 24 * time.Hour

const verificationSubject = "Confirm your email address"

var verificationTemplate = template.Must(template.New("verify").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Please confirm your email address by following the link below.</p>
  <p><a href="{{.Link}}">Verify email</a></p>
  <p>The link expires in {{.Hours}} hours. If you did not sign up, ignore this message.</p>
</body>
</html>`))

// VerificationLink builds {base}/verify-email/{token}.
func VerificationLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/verify-email/" + url.PathEscape(token)
}

// EmailVerifier issues and redeems single-use email verification tokens.
type EmailVerifier struct {
	tokens      interfaces.VerificationTokenRepository
	users       interfaces.UserRepository
	notifier    interfaces.Notifier
	ttl         time.Duration
	redirectURL string
	logger      *zap.Logger
	now         func() time.Time
}

func NewEmailVerifier(
	tokens interfaces.VerificationTokenRepository,
	users interfaces.UserRepository,
	notifier interfaces.Notifier,
	ttl time.Duration,
	redirectURL string,
	logger *zap.Logger,
) *EmailVerifier {
	if ttl <= 0 {
		ttl = DefaultVerificationTTL
	}
	return &EmailVerifier{
		tokens:      tokens,
		users:       users,
		notifier:    notifier,
		ttl:         ttl,
		redirectURL: redirectURL,
		logger:      logger.Named("EmailVerifier"),
		now:         time.Now,
	}
}

// Issue stores a fresh token for the user and mails the link.
// A previously issued token for the same user stops working.
func (v *EmailVerifier) Issue(ctx context.Context, user *models.User) error {
	logFields := []zap.Field{zap.String("userID", user.ID.String())}

	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	token := id.String()

	if err := v.tokens.Save(ctx, token, user.ID, v.ttl); err != nil {
		v.logger.Error("Failed to store verification token", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	body, err := renderVerificationEmail(user.Name, VerificationLink(v.redirectURL, token), v.ttl)
	if err != nil {
		return err
	}
	if err := v.notifier.Send(ctx, models.EmailMessage{To: user.Email, Subject: verificationSubject, HTML: body}); err != nil {
		v.logger.Error("Failed to send verification email", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	v.logger.Info("Verification email dispatched", logFields...)
	return nil
}

// Redeem marks the owner of the token as verified. The token is claimed before
// the user is updated, so it can be redeemed at most once.
func (v *EmailVerifier) Redeem(ctx context.Context, token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, models.ErrInvalidVerificationToken
	}

	userID, err := v.tokens.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			v.logger.Debug("Verification token not found or expired")
			return uuid.Nil, models.ErrInvalidVerificationToken
		}
		return uuid.Nil, err
	}
	logFields := []zap.Field{zap.String("userID", userID.String())}

	if err := v.users.MarkEmailVerified(ctx, userID, v.now().UTC()); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			v.logger.Warn("Verification token points to a missing user", logFields...)
			return uuid.Nil, models.ErrInvalidVerificationToken
		}
		// Токен уже изъят; возвращаем его, чтобы ссылка сработала при повторе.
		if restoreErr := v.tokens.Save(ctx, token, userID, v.ttl); restoreErr != nil {
			v.logger.Error("Failed to restore verification token", append(logFields, zap.Error(restoreErr))...)
		}
		return uuid.Nil, err
	}

	v.logger.Info("Email verified", logFields...)
	return userID, nil
}

func renderVerificationEmail(name, link string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	err := verificationTemplate.Execute(&buf, struct {
		Name  string
		Link  string
		Hours int
	}{Name: name, Link: link, Hours: int(ttl.Hours())})
	if err != nil {
		return "", fmt.Errorf("failed to render verification email: %w", err)
	}
	return buf.String(), nil
}
