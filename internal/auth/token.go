package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/tenant-platform/internal/domain"
)

// Token parse failures. ErrTokenExpired is kept distinct so callers can tell
// clients to re-authenticate rather than retry.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token verification failed")
)

// TokenManager issues and validates the two JWT families: short-lived access
// tokens and long-lived refresh tokens, both HS256 over a shared secret.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Claims describes the JWT payload carried by both token families.
type Claims struct {
	UserID   int64       `json:"userId"`
	Role     domain.Role `json:"role"`
	TenantID *int64      `json:"tenantId"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs a short-lived access token for the identity.
func (tm *TokenManager) IssueAccessToken(userID int64, role domain.Role, tenantID *int64) (string, time.Time, error) {
	return tm.issue(userID, role, tenantID, tm.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the identity.
func (tm *TokenManager) IssueRefreshToken(userID int64, role domain.Role, tenantID *int64) (string, time.Time, error) {
	return tm.issue(userID, role, tenantID, tm.refreshTTL)
}

func (tm *TokenManager) issue(userID int64, role domain.Role, tenantID *int64, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID:   userID,
		Role:     role,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			// A jti keeps tokens minted within the same second distinct,
			// so every session row holds a unique refresh token.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates a token and returns its claims. Expired tokens fail with
// ErrTokenExpired; anything else invalid fails with ErrTokenInvalid.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// AccessTTL exposes the access token lifetime for cookie max-age.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// RefreshTTL exposes the refresh token lifetime for cookie max-age.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }
