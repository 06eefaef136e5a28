package auth

import (
	"testing"

	"contactbook/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := newBcryptHasherWithCost(bcrypt.MinCost)

	password := "s3cret-passw0rd"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Each hash is salted
	other, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)

	assert.True(t, hasher.Check(password, hash))
	assert.True(t, hasher.Check(password, other))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newBcryptHasherWithCost(bcrypt.MinCost)
	password := "s3cret-passw0rd"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("wrong-password", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check(password, ""))
}

func TestNewBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	hash, err := h.Hash("password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	h := newBcryptHasherWithCost(99)

	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
