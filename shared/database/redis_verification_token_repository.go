package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-server/shared/interfaces"
	"community-server/shared/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ interfaces.VerificationTokenRepository = (*redisVerificationTokenRepository)(nil)

const (
	verificationKeyPrefix     = "email-verify:"
	verificationUserKeyPrefix = "email-verify:user:"
)

type redisVerificationTokenRepository struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisVerificationTokenRepository creates a Redis-backed VerificationTokenRepository.
//
// Keys:
//
//	email-verify:{token}     -> userID
//	email-verify:user:{id}   -> token (index used to revoke the previous token)
func NewRedisVerificationTokenRepository(client redis.UniversalClient, logger *zap.Logger) interfaces.VerificationTokenRepository {
	return &redisVerificationTokenRepository{
		client: client,
		logger: logger.Named("RedisVerificationTokenRepo"),
	}
}

func verificationKey(token string) string {
	return verificationKeyPrefix + token
}

func verificationUserKey(userID uuid.UUID) string {
	return verificationUserKeyPrefix + userID.String()
}

// saveTokenScript stores the token and revokes the user's previous one in a single step.
// KEYS[1] user index, KEYS[2] token key; ARGV: token, userID, ttl ms, token key prefix.
var saveTokenScript = redis.NewScript(`
local prev = redis.call('GET', KEYS[1])
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
if prev and prev ~= ARGV[1] then
	redis.call('DEL', ARGV[4] .. prev)
	return 1
end
return 0
`)

// dropIndexScript removes the user index only while it still points at the token.
var dropIndexScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

func (r *redisVerificationTokenRepository) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	logFields := []zap.Field{zap.String("userID", userID.String()), zap.Duration("ttl", ttl)}
	if ttl <= 0 {
		return fmt.Errorf("verification token ttl must be positive, got %s", ttl)
	}

	revoked, err := saveTokenScript.Run(ctx, r.client,
		[]string{verificationUserKey(userID), verificationKey(token)},
		token, userID.String(), ttl.Milliseconds(), verificationKeyPrefix,
	).Int()
	if err != nil {
		r.logger.Error("Failed to store verification token", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to store verification token: %w", err)
	}
	r.logger.Debug("Verification token stored", append(logFields, zap.Bool("revokedPrevious", revoked == 1))...)
	return nil
}

// Consume claims the token with GETDEL, so only one caller ever gets the user id back.
func (r *redisVerificationTokenRepository) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := r.client.GetDel(ctx, verificationKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to consume verification token", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to consume verification token: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		r.logger.Error("Stored verification token has malformed user id", zap.String("value", val), zap.Error(err))
		return uuid.Nil, models.ErrTokenNotFound
	}

	// Индекс лишь помогает отзыву, его потеря не мешает подтверждению.
	if err := dropIndexScript.Run(ctx, r.client, []string{verificationUserKey(userID)}, token).Err(); err != nil {
		r.logger.Warn("Failed to drop verification index", zap.Error(err), zap.String("userID", userID.String()))
	}
	return userID, nil
}
