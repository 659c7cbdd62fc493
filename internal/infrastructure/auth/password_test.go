package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	for _, password := range []string{"secret1", "correct horse battery staple", "pässwörd"} {
		hash, err := hasher.Hash(password)
		require.NoError(t, err)

		assert.NotEqual(t, password, hash)
		assert.NoError(t, hasher.Compare(hash, password))
		assert.ErrorIs(t, hasher.Compare(hash, password+"x"), ErrInvalidCredentials)
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
