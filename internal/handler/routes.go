package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth          *AuthHandler
	Search        *SearchHandler
	Bookings      *BookingHandler
	Notifications *NotificationHandler
	Layout        *LayoutHandler
	Now           func() time.Time
}

func (h Handlers) Register(e *echo.Echo) {
	e.GET("/health", HealthHandler)

	v1 := e.Group("/api/v1")
	v1.GET("/layout", h.Layout.Layout)
	v1.GET("/search", h.Search.Search)
	v1.GET("/locations", h.Search.Locations)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/admin-login", h.Auth.AdminLogin)
	v1.POST("/auth/logout", h.Auth.Logout)

	auth := RequireBearer(h.Now)
	v1.GET("/auth/me", h.Auth.Me, auth)

	v1.GET("/bookings", h.Bookings.List, auth)
	v1.GET("/bookings/:id", h.Bookings.Detail, auth)
	v1.POST("/bookings/:id/cancel", h.Bookings.Cancel, auth)
	v1.GET("/bookings/:id/ticket", h.Bookings.Ticket, auth)

	v1.GET("/notifications", h.Notifications.List, auth)
	v1.GET("/notifications/count", h.Notifications.Count, auth)
	v1.POST("/notifications/read-all", h.Notifications.ReadAll, auth)
	v1.POST("/notifications/:id/read", h.Notifications.Read, auth)
}
