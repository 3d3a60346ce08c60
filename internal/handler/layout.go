package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/session"
	"github.com/dharmasatrya/ticketkini/internal/ui"
)

type LayoutAPI interface {
	Me(ctx context.Context) (*models.User, error)
	UnreadCount(ctx context.Context) (int, error)
}

type LayoutHandler struct {
	api    LayoutAPI
	now    func() time.Time
	logger *slog.Logger
}

// Layout is the chrome every page shares.
type Layout struct {
	Navbar       ui.Navbar        `json:"navbar"`
	Footer       ui.Footer        `json:"footer"`
	Testimonials []ui.Testimonial `json:"testimonials"`
}

func NewLayoutHandler(api LayoutAPI, logger *slog.Logger) *LayoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LayoutHandler{api: api, now: time.Now, logger: logger}
}

// Layout works for anonymous visitors too. A valid bearer adds the user
// menu and unread badge; any failure there falls back to the anonymous
// navbar.
func (h *LayoutHandler) Layout(c echo.Context) error {
	current := c.QueryParam("page")
	if current == "" {
		current = "/"
	}

	var user *models.User
	unread := 0
	if token := bearerToken(c); token != "" {
		if _, err := session.Validate(token, h.now()); err == nil {
			ctx := api.WithBearer(c.Request().Context(), token)
			if u, err := h.api.Me(ctx); err == nil {
				user = u
				if n, err := h.api.UnreadCount(ctx); err == nil {
					unread = n
				} else {
					h.logger.Debug("unread count unavailable", "error", err)
				}
			} else {
				h.logger.Debug("layout user lookup failed", "error", err)
			}
		}
	}

	return c.JSON(http.StatusOK, Layout{
		Navbar:       ui.NewNavbar(user, unread, current),
		Footer:       ui.NewFooter(h.now().Year()),
		Testimonials: ui.DefaultTestimonials(),
	})
}
