package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/notify"
)

type NotificationAPI interface {
	UnreadNotifications(ctx context.Context, limit int) (*models.UnreadNotifications, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

type NotificationHandler struct {
	api NotificationAPI
}

type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

func NewNotificationHandler(api NotificationAPI) *NotificationHandler {
	return &NotificationHandler{api: api}
}

// List returns the unread notifications the dropdown shows; the count is
// the server's, even when it exceeds what is listed.
func (h *NotificationHandler) List(c echo.Context) error {
	limit, err := intParam(c, "limit", notify.DefaultCacheSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	res, err := h.api.UnreadNotifications(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	items := res.Notifications
	if items == nil {
		items = []models.Notification{}
	}
	return c.JSON(http.StatusOK, NotificationList{Notifications: items, UnreadCount: res.Count})
}

func (h *NotificationHandler) Count(c echo.Context) error {
	n, err := h.api.UnreadCount(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"unread_count": n})
}

func (h *NotificationHandler) Read(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return badRequest(c, "notification id is required")
	}
	if err := h.api.MarkNotificationRead(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) ReadAll(c echo.Context) error {
	if err := h.api.MarkAllNotificationsRead(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}
