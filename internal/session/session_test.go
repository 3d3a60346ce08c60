package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/storage"
)

var now = time.Date(2025, 6, 29, 8, 0, 0, 0, time.UTC)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-server-key"))
	require.NoError(t, err)
	return s
}

type fakeAuth struct {
	token     string
	user      models.User
	meCalls   int
	logoutErr error
	loggedOut bool
	adminUsed bool
	lastToken string
}

func (f *fakeAuth) Login(ctx context.Context, c models.Credentials) (*models.Token, error) {
	return &models.Token{AccessToken: f.token, TokenType: "bearer"}, nil
}

func (f *fakeAuth) AdminLogin(ctx context.Context, c models.Credentials) (*models.Token, error) {
	f.adminUsed = true
	return f.Login(ctx, c)
}

func (f *fakeAuth) Me(ctx context.Context) (*models.User, error) {
	f.meCalls++
	f.lastToken = api.BearerFrom(ctx)
	u := f.user
	return &u, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.loggedOut = true
	return f.logoutErr
}

func TestValidate(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"sub": "rina@example.com", "is_admin": true, "exp": now.Add(time.Hour).Unix()})

	claims, err := Validate(tok, now)
	require.NoError(t, err)
	assert.Equal(t, "rina@example.com", claims.Subject)
	assert.True(t, claims.Admin)

	_, err = Validate(tok, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = Validate("", now)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = Validate("not.a.jwt", now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err = Validate("Bearer "+signed(t, jwt.MapClaims{"sub": "x"}), now)
	require.NoError(t, err, "tokens without exp never expire client-side")
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestLoginStoresTokenAndUser(t *testing.T) {
	auth := &fakeAuth{
		token: signed(t, jwt.MapClaims{"sub": "rina@example.com", "exp": now.Add(time.Hour).Unix()}),
		user:  models.User{ID: 3, Name: "Rina"},
	}
	store := storage.NewMemory()
	m := NewManager(auth, store, nil)
	m.now = func() time.Time { return now }

	user, err := m.Login(context.Background(), models.Credentials{Email: "rina@example.com", Password: "pw"}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.True(t, auth.adminUsed)
	assert.Equal(t, auth.token, auth.lastToken)

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, auth.token, tok)

	cur, err := m.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rina", cur.Name)
	assert.Equal(t, 1, auth.meCalls, "profile served from storage")
}

func TestLoginRejectsInvalidCredentials(t *testing.T) {
	m := NewManager(&fakeAuth{}, storage.NewMemory(), nil)
	_, err := m.Login(context.Background(), models.Credentials{Email: " "}, false)
	assert.ErrorIs(t, err, models.ErrMissingEmail)
}

func TestExpiredTokenIsEvicted(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyToken, signed(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})))
	require.NoError(t, store.Set(ctx, KeyUser, `{"id":3}`))

	m := NewManager(&fakeAuth{}, store, nil)
	m.now = func() time.Time { return now }

	_, err := m.Token(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = m.Token(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = store.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLogoutClearsEvenWhenRemoteFails(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyToken, "tok"))
	require.NoError(t, store.Set(ctx, KeyUser, `{"id":3}`))

	auth := &fakeAuth{logoutErr: errors.New("connection refused")}
	m := NewManager(auth, store, nil)

	require.NoError(t, m.Logout(ctx))
	assert.True(t, auth.loggedOut)

	_, err := m.Token(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
