package handlers

import (
	"net/http"
	"strconv"

	"github.com/hlaing-dev/socialbook/backend/internal/apperrors"
	"github.com/hlaing-dev/socialbook/backend/internal/middleware"
	"github.com/hlaing-dev/socialbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.PATCH("/notifications/read-all", h.MarkAllAsRead)
	g.PATCH("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications lists the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	notifications, unread, err := h.notificationService.ListForUser(caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"count":         len(notifications),
		"unread_count":  unread,
	})
}

// MarkAsRead marks a notification as read, idempotently
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperrors.NewBadRequest("Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(caller, uint(id)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllAsRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	caller := middleware.CurrentUser(c)

	if err := h.notificationService.MarkAllRead(caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
