package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify never fails: a malformed hash is a mismatch.
	Verify(password, hash string) bool
}

// BcryptHasher - bcrypt с настраиваемой стоимостью и необязательным "перцем".
type BcryptHasher struct {
	cost   int
	pepper string
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher returns a hasher with the given cost. An empty pepper disables peppering.
func NewBcryptHasher(cost int, pepper string) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost, pepper: pepper}
}

// prepare applies HMAC-SHA256 keyed by the pepper.
func (h *BcryptHasher) prepare(password string) []byte {
	if h.pepper == "" {
		return []byte(password)
	}
	mac := hmac.New(sha256.New, []byte(h.pepper))
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(h.prepare(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), h.prepare(password)) == nil
}
