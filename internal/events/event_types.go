package events

import (
	"time"

	"github.com/spec-kit/tenant-platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventTenantCreated  EventType = "tenant_created"
	EventTenantUpdated  EventType = "tenant_updated"
	EventTenantDeleted  EventType = "tenant_deleted"
)

// Actor encapsulates who triggered an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	TenantID  *int64 `json:"tenant_id,omitempty"`
}

// TenantCreatedPayload payload.
type TenantCreatedPayload struct {
	TenantID  int64  `json:"tenant_id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// TenantUpdatedPayload payload.
type TenantUpdatedPayload struct {
	TenantID int64  `json:"tenant_id"`
	Name     string `json:"name"`
}

// TenantDeletedPayload payload.
type TenantDeletedPayload struct {
	TenantID  int64  `json:"tenant_id"`
	Subdomain string `json:"subdomain"`
}
