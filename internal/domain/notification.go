package domain

import "time"

// NotificationType categorizes notifications for display.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is a per-user message shown in the dashboard.
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Type      NotificationType
	IsRead    bool
	CreatedAt time.Time
}

// NotificationStats aggregates counts for a user or a tenant.
type NotificationStats struct {
	Total       int64
	Unread      int64
	Read        int64
	ByType      map[NotificationType]int64
	Recent7Days int64
}
