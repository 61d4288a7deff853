package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tenant-platform/internal/domain"
)

// NotificationRepository defines persistence access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	StatsByUser(ctx context.Context, userID int64) (*domain.NotificationStats, error)
	StatsByTenant(ctx context.Context, tenantID int64) (*domain.NotificationStats, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository returns a Postgres-backed implementation.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (user_id, title, message, type)
        VALUES ($1, $2, $3, $4)
        RETURNING id, is_read, created_at`

	return r.pool.QueryRow(ctx, query,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
	).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	const query = `
        SELECT id, user_id, title, message, type, is_read, created_at
        FROM notifications WHERE user_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND is_read=FALSE`

	var count int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int64) error {
	const query = `UPDATE notifications SET is_read=TRUE WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM notifications WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) StatsByUser(ctx context.Context, userID int64) (*domain.NotificationStats, error) {
	const totals = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE is_read=FALSE),
               COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
        FROM notifications WHERE user_id=$1`
	const byType = `
        SELECT type, COUNT(*) FROM notifications
        WHERE user_id=$1 GROUP BY type`

	return r.stats(ctx, totals, byType, userID)
}

func (r *notificationRepository) StatsByTenant(ctx context.Context, tenantID int64) (*domain.NotificationStats, error) {
	const totals = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE n.is_read=FALSE),
               COUNT(*) FILTER (WHERE n.created_at >= NOW() - INTERVAL '7 days')
        FROM notifications n
        JOIN users u ON n.user_id = u.id
        WHERE u.tenant_id=$1`
	const byType = `
        SELECT n.type, COUNT(*) FROM notifications n
        JOIN users u ON n.user_id = u.id
        WHERE u.tenant_id=$1 GROUP BY n.type`

	return r.stats(ctx, totals, byType, tenantID)
}

func (r *notificationRepository) stats(ctx context.Context, totalsQuery, byTypeQuery string, arg any) (*domain.NotificationStats, error) {
	stats := &domain.NotificationStats{ByType: make(map[domain.NotificationType]int64)}

	if err := r.pool.QueryRow(ctx, totalsQuery, arg).
		Scan(&stats.Total, &stats.Unread, &stats.Recent7Days); err != nil {
		return nil, err
	}
	stats.Read = stats.Total - stats.Unread

	rows, err := r.pool.Query(ctx, byTypeQuery, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind domain.NotificationType
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		stats.ByType[kind] = count
	}
	return stats, rows.Err()
}
