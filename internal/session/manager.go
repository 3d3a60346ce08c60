package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/storage"
)

const (
	KeyToken = "auth_token"
	KeyUser  = "user"
)

// Authenticator is the part of the API client the session needs.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Token, error)
	AdminLogin(ctx context.Context, creds models.Credentials) (*models.Token, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

type Manager struct {
	auth   Authenticator
	store  storage.Store
	now    func() time.Time
	logger *slog.Logger
}

func NewManager(auth Authenticator, store storage.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{auth: auth, store: store, now: time.Now, logger: logger}
}

// Login exchanges credentials for a token, stores it and the user
// profile, and returns the profile.
func (m *Manager) Login(ctx context.Context, creds models.Credentials, admin bool) (*models.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	login := m.auth.Login
	if admin {
		login = m.auth.AdminLogin
	}
	tok, err := login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if _, err := Validate(tok.AccessToken, m.now()); err != nil {
		return nil, fmt.Errorf("session: server issued unusable token: %w", err)
	}

	user, err := m.auth.Me(api.WithBearer(ctx, tok.AccessToken))
	if err != nil {
		return nil, err
	}

	if err := m.store.Set(ctx, KeyToken, tok.AccessToken); err != nil {
		return nil, err
	}
	if err := storage.SetJSON(ctx, m.store, KeyUser, user); err != nil {
		return nil, err
	}

	m.logger.Info("logged in", "user_id", user.ID, "admin", user.IsAdmin)
	return user, nil
}

// Token returns the stored token if it is still usable. An expired token is
// evicted so the next caller sees ErrNotAuthenticated.
func (m *Manager) Token(ctx context.Context) (string, error) {
	tok, err := m.store.Get(ctx, KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", err
	}

	if _, err := Validate(tok, m.now()); err != nil {
		if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrInvalidToken) {
			m.clear(ctx)
		}
		return "", err
	}
	return tok, nil
}

// Context returns ctx carrying the stored bearer token.
func (m *Manager) Context(ctx context.Context) (context.Context, error) {
	tok, err := m.Token(ctx)
	if err != nil {
		return ctx, err
	}
	return api.WithBearer(ctx, tok), nil
}

// CurrentUser returns the cached profile, refreshing it from the API when
// the cache is missing.
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	authed, err := m.Context(ctx)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = storage.GetJSON(ctx, m.store, KeyUser, &user)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		m.logger.Warn("cached user unreadable, refetching", "error", err)
	}

	fresh, err := m.auth.Me(authed)
	if err != nil {
		return nil, err
	}
	if err := storage.SetJSON(ctx, m.store, KeyUser, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Logout clears local state even when the server call fails.
func (m *Manager) Logout(ctx context.Context) error {
	if tok, err := m.store.Get(ctx, KeyToken); err == nil && tok != "" {
		if err := m.auth.Logout(api.WithBearer(ctx, tok)); err != nil {
			m.logger.Warn("remote logout failed", "error", err)
		}
	}
	return m.clear(ctx)
}

func (m *Manager) clear(ctx context.Context) error {
	return errors.Join(
		m.store.Delete(ctx, KeyToken),
		m.store.Delete(ctx, KeyUser),
	)
}
