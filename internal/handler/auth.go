package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/session"
)

type AuthHandler struct {
	auth   session.Authenticator
	now    func() time.Time
	logger *slog.Logger
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        *models.User `json:"user"`
	Redirect    string       `json:"redirect"`
}

func NewAuthHandler(auth session.Authenticator, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{auth: auth, now: time.Now, logger: logger}
}

func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, false)
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c echo.Context, admin bool) error {
	ctx := c.Request().Context()

	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := creds.Validate(); err != nil {
		return writeError(c, err)
	}

	login := h.auth.Login
	if admin {
		login = h.auth.AdminLogin
	}
	tok, err := login(ctx, creds)
	if err != nil {
		return writeError(c, err)
	}
	if _, err := session.Validate(tok.AccessToken, h.now()); err != nil {
		h.logger.Error("login returned unusable token", "error", err)
		return writeError(c, err)
	}

	user, err := h.auth.Me(api.WithBearer(ctx, tok.AccessToken))
	if err != nil {
		return writeError(c, err)
	}

	redirect := "/"
	if user.IsAdmin {
		redirect = "/admin"
	}
	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   tok.ExpiresIn,
		User:        user,
		Redirect:    redirect,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.auth.Me(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Logout always succeeds for the caller; the browser drops its token
// whatever the server said.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if token := bearerToken(c); token != "" {
		ctx = api.WithBearer(ctx, token)
	}
	if err := h.auth.Logout(ctx); err != nil {
		h.logger.Warn("remote logout failed", "error", err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":  "Logged out",
		"redirect": loginPath,
	})
}
