package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/ratelimit"
)

func (c *Client) UnreadNotifications(ctx context.Context, limit int) (*models.UnreadNotifications, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var unread models.UnreadNotifications
	if err := c.do(ctx, ratelimit.GroupNotification, http.MethodGet, "/notifications/unread", q, nil, &unread); err != nil {
		return nil, err
	}
	return &unread, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var body struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.do(ctx, ratelimit.GroupNotification, http.MethodGet, "/notifications/unread-count", nil, nil, &body); err != nil {
		return 0, err
	}
	return body.UnreadCount, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := "/notifications/" + url.PathEscape(id) + "/mark-read"
	return c.do(ctx, ratelimit.GroupNotification, http.MethodPut, path, nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, ratelimit.GroupNotification, http.MethodPut, "/notifications/mark-all-read", nil, nil, nil)
}
