package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	token, err := tm.GenerateAccessToken("alice", "customer")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "alice", claims.Subject)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Minute).(*tokenManager)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := tm.GenerateAccessToken("alice", "customer")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Invalid(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Other secret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)
		token, err := other.GenerateAccessToken("mallory", "admin")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{Username: "mallory", Role: "admin"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordVerifier(t *testing.T) {
	t.Run("Plaintext", func(t *testing.T) {
		v, err := NewPasswordVerifier("")
		require.NoError(t, err)

		stored, err := v.Hash("admin123")
		require.NoError(t, err)
		assert.Equal(t, "admin123", stored)
		assert.True(t, v.Verify(stored, "admin123"))
		assert.False(t, v.Verify(stored, "admin124"))
	})

	t.Run("Bcrypt", func(t *testing.T) {
		v := BcryptVerifier{Cost: bcrypt.MinCost}

		stored, err := v.Hash("hunter2")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2", stored)
		assert.True(t, v.Verify(stored, "hunter2"))
		assert.False(t, v.Verify(stored, "hunter3"))
		assert.False(t, v.Verify("hunter2", "hunter2"))
	})

	t.Run("Unknown scheme", func(t *testing.T) {
		_, err := NewPasswordVerifier("md5")
		assert.Error(t, err)
	})
}
