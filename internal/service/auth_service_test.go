package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tenant-platform/internal/config"
	"github.com/spec-kit/tenant-platform/internal/domain"
	"github.com/spec-kit/tenant-platform/internal/service"
	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

type fakeUserRepo struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = r.seq
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*domain.User
	for _, user := range r.byID {
		if user.Role == role {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) CountByTenant(_ context.Context, tenantID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, user := range r.byID {
		if user.TenantID != nil && *user.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeSessionRepo struct {
	mu   sync.Mutex
	seq  int64
	rows []*domain.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, userID int64, refreshToken string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	session := &domain.Session{ID: r.seq, UserID: userID, RefreshToken: refreshToken}
	r.rows = append(r.rows, session)
	return session, nil
}

func (r *fakeSessionRepo) FindByRefreshToken(_ context.Context, refreshToken string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if refreshToken == "" {
		return nil, pgx.ErrNoRows
	}
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].RefreshToken == refreshToken {
			copied := *r.rows[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSessionRepo) Invalidate(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	blanked := false
	for _, row := range r.rows {
		if row.UserID == userID && row.RefreshToken != "" {
			row.RefreshToken = ""
			blanked = true
		}
	}
	if !blanked {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fakeSessionRepo) count(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, row := range r.rows {
		if row.UserID == userID {
			count++
		}
	}
	return count
}

func newAuthService(users *fakeUserRepo, sessions *fakeSessionRepo) *service.AuthService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.RefreshTokenTTLDays = 30
	cfg.Auth.BcryptCost = 4
	cfg.Tenant.DefaultTenantID = 1
	return service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:    users,
		SessionRepo: sessions,
	})
}

func register(t *testing.T, svc *service.AuthService, email string) (*domain.User, *service.TokenPair) {
	t.Helper()
	user, pair, err := svc.Register(context.Background(), service.RegisterInput{
		FirstName: "Test",
		Email:     email,
		Password:  "p",
		Role:      domain.RoleUser,
	})
	require.NoError(t, err)
	return user, pair
}

func TestRegisterThenLogin(t *testing.T) {
	users := newFakeUserRepo()
	sessions := &fakeSessionRepo{}
	svc := newAuthService(users, sessions)
	ctx := context.Background()

	registered, _ := register(t, svc, "a@x.com")
	require.NotNil(t, registered.TenantID)
	assert.Equal(t, int64(1), *registered.TenantID, "tenant should default to 1")
	assert.Equal(t, 1, sessions.count(registered.ID), "register appends one session row")

	user, pair, err := svc.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, 2, sessions.count(user.ID), "login appends one session row")

	claims, err := svc.TokenManager().Parse(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, int64(1), *claims.TenantID)
}

func TestLoginFailures(t *testing.T) {
	users := newFakeUserRepo()
	sessions := &fakeSessionRepo{}
	svc := newAuthService(users, sessions)
	ctx := context.Background()

	register(t, svc, "a@x.com")

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@x.com", "p")
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, 404, domainErr.HTTPStatus)
		assert.Equal(t, "Email not found!", domainErr.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "a@x.com", "wrong")
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, 401, domainErr.HTTPStatus)
		assert.Equal(t, "Invalid credentials!", domainErr.Message)
	})
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeSessionRepo{})

	register(t, svc, "a@x.com")

	_, _, err := svc.Register(context.Background(), service.RegisterInput{
		FirstName: "Again",
		Email:     "a@x.com",
		Password:  "p",
		Role:      domain.RoleUser,
	})
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Email already exists!", domainErr.Message)
}

func TestConcurrentLoginsAreIndependent(t *testing.T) {
	users := newFakeUserRepo()
	sessions := &fakeSessionRepo{}
	svc := newAuthService(users, sessions)
	ctx := context.Background()

	user, _ := register(t, svc, "a@x.com")

	_, first, err := svc.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	_, second, err := svc.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)

	// Both sessions stay valid until logout blanks them.
	_, _, err = svc.Refresh(ctx, first.RefreshToken)
	assert.NoError(t, err)
	_, _, err = svc.Refresh(ctx, second.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, 5, sessions.count(user.ID))
}

func TestRefresh(t *testing.T) {
	users := newFakeUserRepo()
	sessions := &fakeSessionRepo{}
	svc := newAuthService(users, sessions)
	ctx := context.Background()

	user, pair := register(t, svc, "a@x.com")

	t.Run("rotation appends a session row", func(t *testing.T) {
		refreshed, newPair, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, refreshed.ID)
		assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)
		assert.Equal(t, 2, sessions.count(user.ID))
	})

	t.Run("fabricated string fails verification", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, "fabricated")
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, 401, domainErr.HTTPStatus)
		assert.Equal(t, "Unauthorized! Token verification failed.", domainErr.Message)
	})

	t.Run("valid signature but no session row", func(t *testing.T) {
		// A well-formed token the session store has never seen.
		token, _, err := svc.TokenManager().IssueRefreshToken(999, domain.RoleUser, nil)
		require.NoError(t, err)

		_, _, err = svc.Refresh(ctx, token)
		assert.ErrorIs(t, err, service.ErrSessionNotValid)
	})
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	users := newFakeUserRepo()
	sessions := &fakeSessionRepo{}
	svc := newAuthService(users, sessions)
	ctx := context.Background()

	user, pair := register(t, svc, "a@x.com")

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, _, err := svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, service.ErrSessionNotValid)

	// Repeated logout with the stale token fails rather than no-oping.
	err = svc.Logout(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, service.ErrSessionNotValid)

	// Rows are blanked, never deleted.
	assert.Equal(t, 1, sessions.count(user.ID))
}
