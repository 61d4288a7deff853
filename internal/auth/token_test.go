package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tenant-platform/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 30*24*time.Hour)
	tenantID := int64(7)

	t.Run("access token claims and expiry", func(t *testing.T) {
		token, expiresAt, err := tm.IssueAccessToken(42, domain.RoleAdmin, &tenantID)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := tm.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
		require.NotNil(t, claims.TenantID)
		assert.Equal(t, tenantID, *claims.TenantID)
		assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
	})

	t.Run("refresh token expiry", func(t *testing.T) {
		token, expiresAt, err := tm.IssueRefreshToken(42, domain.RoleUser, nil)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), expiresAt, 5*time.Second)

		claims, err := tm.Parse(token)
		require.NoError(t, err)
		assert.Nil(t, claims.TenantID)
	})
}

func TestParseExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, time.Hour)

	expired := signExpired(t, "test-secret")
	_, err := tm.Parse(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseInvalidTokens(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour, time.Hour)
		token, _, err := other.IssueAccessToken(1, domain.RoleUser, nil)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

// signExpired mints a token whose expiry is already in the past.
func signExpired(t *testing.T, secret string) string {
	t.Helper()
	claims := &Claims{
		UserID: 42,
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
