package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tenant-platform/internal/auth"
	"github.com/spec-kit/tenant-platform/internal/config"
	"github.com/spec-kit/tenant-platform/internal/domain"
	"github.com/spec-kit/tenant-platform/internal/events"
	"github.com/spec-kit/tenant-platform/internal/repository"
	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

// ErrSessionNotValid is returned when a refresh token matches no session row.
// The HTTP layer clears both auth cookies when it sees this error.
var ErrSessionNotValid = apperrors.NewUnauthorized("Unauthorized! Token is not valid!")

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// RegisterInput carries the register payload into the service.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
	TenantID  *int64
}

// AuthService coordinates login, registration, refresh, and logout flows over
// the token manager and the session store.
type AuthService struct {
	users           repository.UserRepository
	sessions        repository.SessionRepository
	tokens          *auth.TokenManager
	dispatcher      events.Dispatcher
	bcryptCost      int
	defaultTenantID int64
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:           deps.UserRepo,
		sessions:        deps.SessionRepo,
		tokens:          auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL()),
		dispatcher:      deps.Dispatcher,
		bcryptCost:      cfg.Auth.BcryptCost,
		defaultTenantID: cfg.Tenant.DefaultTenantID,
	}
}

// Login authenticates by email and password, appends a session row, and
// returns the user with a fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("Email not found!")
		}
		return nil, nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("Invalid credentials!")
	}

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Register creates a new account and logs it in immediately. An unspecified
// tenant falls back to the default tenant.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error) {
	if !input.Role.Valid() {
		return nil, nil, apperrors.NewValidationError("Please provide a valid role.")
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, nil, apperrors.NewValidationError("Email already exists!")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	tenantID := input.TenantID
	if tenantID == nil {
		id := s.defaultTenantID
		tenantID = &id
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		TenantID:     tenantID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.Event{
		Type:  events.EventUserRegistered,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
		Payload: events.UserRegisteredPayload{
			UserID:    user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			TenantID:  user.TenantID,
		},
	})

	return user, pair, nil
}

// Refresh rotates a refresh token: the token is verified independently of the
// gateway, matched against the session store, and replaced by a new pair
// minted from the user's current role and tenant.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*domain.User, *TokenPair, error) {
	if _, err := s.tokens.Parse(rawToken); err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, nil, apperrors.NewExpiredToken("Unauthorized! Token expired.", http.StatusUnauthorized)
		}
		return nil, nil, apperrors.NewUnauthorized("Unauthorized! Token verification failed.")
	}

	session, err := s.sessions.FindByRefreshToken(ctx, rawToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrSessionNotValid
		}
		return nil, nil, apperrors.NewInternalError(err)
	}

	// Re-read the owner so role or tenant changes take effect on rotation.
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrSessionNotValid
		}
		return nil, nil, apperrors.NewInternalError(err)
	}

	pair, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout blanks the caller's session rows. Repeating a logout with the same
// stale token fails with ErrSessionNotValid rather than succeeding silently.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	session, err := s.sessions.FindByRefreshToken(ctx, rawToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotValid
		}
		return apperrors.NewInternalError(err)
	}

	if err := s.sessions.Invalidate(ctx, session.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewDomainError(apperrors.CodeInternal, "Logout failed!", http.StatusInternalServerError)
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// GetUser re-reads the authenticated user's profile.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Unauthorized! Token is not valid!")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// issueSession mints a token pair and appends the session row holding the new
// refresh token. A failed insert surfaces as a 500.
func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, accessExp, err := s.tokens.IssueAccessToken(user.ID, user.Role, user.TenantID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	refreshToken, refreshExp, err := s.tokens.IssueRefreshToken(user.ID, user.Role, user.TenantID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if _, err := s.sessions.Create(ctx, user.ID, refreshToken); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
