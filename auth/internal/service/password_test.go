package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost, "")

	hash, err := h.Hash("Abc12345!")
	require.NoError(t, err)
	assert.NotEqual(t, "Abc12345!", hash)

	assert.True(t, h.Verify("Abc12345!", hash))
	assert.False(t, h.Verify("Abc12345?", hash))
	assert.False(t, h.Verify("Abc12345!", "not-a-bcrypt-hash"), "malformed hash is a mismatch")
}

func TestBcryptHasher_Pepper(t *testing.T) {
	peppered := NewBcryptHasher(bcrypt.MinCost, "pepper-1")
	hash, err := peppered.Hash("Abc12345!")
	require.NoError(t, err)

	assert.True(t, peppered.Verify("Abc12345!", hash))
	// Другой перец или его отсутствие не должны подходить
	assert.False(t, NewBcryptHasher(bcrypt.MinCost, "pepper-2").Verify("Abc12345!", hash))
	assert.False(t, NewBcryptHasher(bcrypt.MinCost, "").Verify("Abc12345!", hash))
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0, "").cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1, "").cost)
	assert.Equal(t, 12, NewBcryptHasher(12, "").cost)
}
