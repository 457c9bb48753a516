package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VerificationTokenRepository stores single-use email verification tokens
// in an expiring key-value store.
type VerificationTokenRepository interface {
	// Save stores token -> userID with the given TTL and revokes the
	// token previously issued to the same user, if any.
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error

	// Consume atomically resolves and deletes a token. Returns
	// models.ErrTokenNotFound when the token expired, was already
	// consumed, or never existed.
	Consume(ctx context.Context, token string) (uuid.UUID, error)
}
