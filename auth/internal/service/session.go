package service

import (
	"errors"
	"fmt"
	"time"

	"community-server/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL - фиксированный срок жизни сессии по умолчанию.
const SessionTTL = 7 * 24 * time.Hour

// SessionIssuer creates and validates signed bearer credentials.
type SessionIssuer interface {
	Issue(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
	Validate(token string) (*models.Claims, error)
}

// JWTIssuer signs sessions with HS256.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var _ SessionIssuer = (*JWTIssuer)(nil)

// NewJWTIssuer fails on an empty secret; there is no built-in fallback key.
func NewJWTIssuer(secret string, ttl time.Duration, issuer string) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

func (j *JWTIssuer) Issue(userID uuid.UUID, email string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)
	claims := models.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *JWTIssuer) Validate(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	if _, err := claims.UserID(); err != nil {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}
