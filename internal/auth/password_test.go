package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := NewPasswordHasher(DefaultCost)

	digest, err := h.Hash("Senha@Forte1")
	require.NoError(t, err)
	assert.NotEqual(t, "Senha@Forte1", digest)

	assert.True(t, h.Verify("Senha@Forte1", digest))
	assert.False(t, h.Verify("Senha@Forte2", digest))
	assert.False(t, h.Verify("", digest))
}

func TestHashIsSalted(t *testing.T) {
	h := NewPasswordHasher(DefaultCost)

	a, err := h.Hash("Senha@Forte1")
	require.NoError(t, err)
	b, err := h.Hash("Senha@Forte1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewPasswordHasher(DefaultCost)

	assert.False(t, h.Verify("Senha@Forte1", ""))
	assert.False(t, h.Verify("Senha@Forte1", "não-é-bcrypt"))
	assert.False(t, h.Verify("Senha@Forte1", "$2a$12$curto"))
}

func TestNewPasswordHasherEnforcesMinimumCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewPasswordHasher(4).Cost())
	assert.Equal(t, 13, NewPasswordHasher(13).Cost())
}
