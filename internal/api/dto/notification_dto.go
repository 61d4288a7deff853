package dto

import (
	"time"

	"github.com/spec-kit/tenant-platform/internal/domain"
)

// MarkAsReadRequest payload for marking a notification read.
type MarkAsReadRequest struct {
	NotificationID int64 `json:"notificationId"`
}

// NotificationResponse is one notification row.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationListResponse maps a notification slice.
func NewNotificationListResponse(notifications []*domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			UserID:    n.UserID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

// NotificationStatsResponse aggregates counts for a user or tenant.
type NotificationStatsResponse struct {
	Total       int64            `json:"total"`
	Unread      int64            `json:"unread"`
	Read        int64            `json:"read"`
	ByType      map[string]int64 `json:"by_type"`
	Recent7Days int64            `json:"recent_7_days"`
}

// NewNotificationStatsResponse builds the stats body.
func NewNotificationStatsResponse(stats *domain.NotificationStats) NotificationStatsResponse {
	byType := make(map[string]int64, len(stats.ByType))
	for kind, count := range stats.ByType {
		byType[string(kind)] = count
	}
	return NotificationStatsResponse{
		Total:       stats.Total,
		Unread:      stats.Unread,
		Read:        stats.Read,
		ByType:      byType,
		Recent7Days: stats.Recent7Days,
	}
}
