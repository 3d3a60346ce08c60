package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/session"
)

const claimsKey = "claims"

// RequireBearer rejects requests without a usable bearer token and puts the
// token on the request context for the API client.
func RequireBearer(now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			claims, err := session.Validate(token, now())
			if err != nil {
				return writeError(c, err)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(api.WithBearer(req.Context(), token)))
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
