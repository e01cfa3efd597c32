package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/classforge-auth/internal/auth"
)

func TestBcryptHasherHash(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	t.Run("digest is not the plaintext", func(t *testing.T) {
		digest, err := hasher.Hash("secret1")
		require.NoError(t, err)
		assert.NotEqual(t, "secret1", digest)
		assert.NotContains(t, digest, "secret1")
		assert.True(t, strings.HasPrefix(digest, "$2a$"))
	})

	t.Run("same password produces different digests (salt)", func(t *testing.T) {
		first, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		second, err := hasher.Hash("samepassword")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, hasher.Verify("samepassword", first))
		assert.True(t, hasher.Verify("samepassword", second))
	})

	t.Run("rejects passwords over 72 bytes", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("x", 73))
		assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
	})
}

func TestBcryptHasherVerify(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	passwords := []string{"secret1", "correct horse battery staple", "pässwörd", " "}
	for _, password := range passwords {
		digest, err := hasher.Hash(password)
		require.NoError(t, err)

		assert.True(t, hasher.Verify(password, digest), "password %q should verify", password)
		assert.False(t, hasher.Verify(password+"x", digest), "password %q+x should not verify", password)
	}

	t.Run("malformed digest never matches", func(t *testing.T) {
		assert.False(t, hasher.Verify("secret1", "not-a-digest"))
		assert.False(t, hasher.Verify("", ""))
	})
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	hasher := auth.NewBcryptHasher(0)

	digest, err := hasher.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
