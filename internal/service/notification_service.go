package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/tenant-platform/internal/domain"
	"github.com/spec-kit/tenant-platform/internal/events"
	"github.com/spec-kit/tenant-platform/internal/repository"
	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

// NotificationService serves per-user notifications and materializes domain
// events into notification rows.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// List returns the caller's notifications, newest first.
func (n *NotificationService) List(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	notifications, err := n.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(notifications) == 0 {
		return nil, apperrors.NewNotFound("No notifications found")
	}
	return notifications, nil
}

// UnreadCount returns the caller's unread notification count.
func (n *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	count, err := n.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return count, nil
}

// MarkRead flags a notification as read.
func (n *NotificationService) MarkRead(ctx context.Context, id int64) error {
	if err := n.notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Notification not found")
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Delete removes a notification.
func (n *NotificationService) Delete(ctx context.Context, id int64) error {
	if err := n.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Notification not found")
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Stats aggregates the caller's notification counts.
func (n *NotificationService) Stats(ctx context.Context, userID int64) (*domain.NotificationStats, error) {
	stats, err := n.notifications.StatsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return stats, nil
}

// TenantStats aggregates notification counts across a tenant's users.
func (n *NotificationService) TenantStats(ctx context.Context, tenantID int64) (*domain.NotificationStats, error) {
	stats, err := n.notifications.StatsByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return stats, nil
}

// RegisterHandlers subscribes to domain events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventTenantCreated, n.handleTenantCreated)
	n.dispatcher.Subscribe(events.EventTenantDeleted, n.handleTenantDeleted)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	return n.create(ctx, &domain.Notification{
		UserID:  payload.UserID,
		Title:   "Welcome!",
		Message: fmt.Sprintf("Welcome aboard, %s! Your account is ready.", payload.FirstName),
		Type:    domain.NotificationSuccess,
	})
}

func (n *NotificationService) handleTenantCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TenantCreatedPayload)
	if !ok || event.Actor.UserID == 0 {
		return nil
	}
	return n.create(ctx, &domain.Notification{
		UserID:  event.Actor.UserID,
		Title:   "Tenant created",
		Message: fmt.Sprintf("Tenant %q is now reachable at subdomain %q.", payload.Name, payload.Subdomain),
		Type:    domain.NotificationSuccess,
	})
}

func (n *NotificationService) handleTenantDeleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TenantDeletedPayload)
	if !ok || event.Actor.UserID == 0 {
		return nil
	}
	return n.create(ctx, &domain.Notification{
		UserID:  event.Actor.UserID,
		Title:   "Tenant deleted",
		Message: fmt.Sprintf("Tenant subdomain %q has been removed.", payload.Subdomain),
		Type:    domain.NotificationWarning,
	})
}

func (n *NotificationService) create(ctx context.Context, notification *domain.Notification) error {
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("failed to persist notification",
			zap.Int64("user_id", notification.UserID),
			zap.Error(err))
		return err
	}
	return nil
}
