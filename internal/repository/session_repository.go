package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tenant-platform/internal/domain"
)

// SessionRepository manages refresh-token session rows. Sessions are
// append-only: every login and refresh inserts a new row, logout blanks the
// token value and leaves the row in place.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, refreshToken string) (*domain.Session, error)
	FindByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	Invalidate(ctx context.Context, userID int64) error
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, userID int64, refreshToken string) (*domain.Session, error) {
	const query = `
        INSERT INTO user_sessions (user_id, refresh_token)
        VALUES ($1, $2)
        RETURNING id, created_at`

	session := &domain.Session{UserID: userID, RefreshToken: refreshToken}
	if err := r.pool.QueryRow(ctx, query, userID, refreshToken).
		Scan(&session.ID, &session.CreatedAt); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	// Blanked rows never match: the token column is compared exactly and
	// empty candidates are rejected up front.
	if refreshToken == "" {
		return nil, pgx.ErrNoRows
	}

	const query = `
        SELECT id, user_id, refresh_token, created_at
        FROM user_sessions
        WHERE refresh_token=$1 AND refresh_token<>''
        ORDER BY id DESC
        LIMIT 1`

	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, refreshToken).Scan(
		&session.ID,
		&session.UserID,
		&session.RefreshToken,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Invalidate(ctx context.Context, userID int64) error {
	const query = `
        UPDATE user_sessions SET refresh_token=''
        WHERE user_id=$1 AND refresh_token<>''`

	cmd, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
