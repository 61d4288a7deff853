package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-platform/internal/api/dto"
	"github.com/spec-kit/tenant-platform/internal/auth"
	"github.com/spec-kit/tenant-platform/internal/service"
	apperrors "github.com/spec-kit/tenant-platform/pkg/util"
)

// NotificationHandler exposes the /api/notifications endpoints.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs handler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notificationService}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized! Token not found!")
	}

	notifications, err := h.notifications.List(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":       "Notifications fetched successfully!",
		"notifications": dto.NewNotificationListResponse(notifications),
	})
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized! Token not found!")
	}

	count, err := h.notifications.UnreadCount(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Unread notifications fetched successfully!",
		"count":   count,
	})
}

// MarkAsRead handles POST /api/notifications/mark-as-read.
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	var req dto.MarkAsReadRequest
	if err := c.BodyParser(&req); err != nil || req.NotificationID <= 0 {
		return apperrors.NewValidationError("Please provide a notification id.")
	}

	if err := h.notifications.MarkRead(c.UserContext(), req.NotificationID); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read!",
	})
}

// Delete handles DELETE /api/notifications/:id.
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Notification deleted successfully!",
	})
}

// Stats handles GET /api/notifications/stats.
func (h *NotificationHandler) Stats(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized! Token not found!")
	}

	stats, err := h.notifications.Stats(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": dto.NewNotificationStatsResponse(stats),
	})
}

// TenantStats handles GET /api/notifications/stats/tenant/:tenantId (Admin+).
func (h *NotificationHandler) TenantStats(c *fiber.Ctx) error {
	tenantID, err := parseID(c, "tenantId")
	if err != nil {
		return err
	}

	stats, err := h.notifications.TenantStats(c.UserContext(), tenantID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"data": dto.NewNotificationStatsResponse(stats),
	})
}
