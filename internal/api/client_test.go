package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/ticketkini/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.URL, srv.Client(), nil)
}

func TestSearchSendsQueryAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Dhaka", r.URL.Query().Get("source"))
		assert.Equal(t, "2025-06-29", r.URL.Query().Get("travel_date"))
		assert.Equal(t, "200", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"trips":[{"id":7,"operator_name":"Green Line","class_prices":{"economy":800},"available_seats":{"economy":12}}],"total_count":1,"page":1,"limit":200}`))
	})

	res, err := c.Search(context.Background(), models.SearchRequest{
		Source: "Dhaka", Destination: "Chittagong", TravelDate: "2025-06-29", Limit: 200,
	})
	require.NoError(t, err)
	require.Len(t, res.Trips, 1)
	assert.Equal(t, int64(7), res.Trips[0].ID)
	assert.Equal(t, 12, res.Trips[0].SeatsLeft())
}

func TestBearerHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":3,"name":"Rina","email":"rina@example.com","is_admin":false}`))
	})

	user, err := c.Me(WithBearer(context.Background(), "abc"))
	require.NoError(t, err)
	assert.Equal(t, "Rina", user.Name)
}

func TestAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`, ErrUnauthorized, "Could not validate credentials"},
		{"forbidden", http.StatusForbidden, `{"detail":"Access denied"}`, ErrUnauthorized, "Access denied"},
		{"not found", http.StatusNotFound, `{"message":"Booking not found"}`, ErrNotFound, "Booking not found"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"bad date"}]}`, nil, "field required; bad date"},
		{"plain text", http.StatusBadGateway, "upstream down", nil, "upstream down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Booking(context.Background(), 9)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			} else {
				assert.NotErrorIs(t, err, ErrUnauthorized)
				assert.NotErrorIs(t, err, ErrNotFound)
			}
		})
	}
}

func TestLogoutTreatsNotFoundAsSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	assert.NoError(t, c.Logout(context.Background()))
}

func TestBookingsPathAndEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/booking/42", r.URL.Path)
		assert.Equal(t, "CONFIRMED", r.URL.Query().Get("status_filter"))
		_ = json.NewEncoder(w).Encode(models.BookingList{
			Success: true,
			Data:    []models.Booking{{ID: 1, Status: "confirmed"}},
			Total:   1,
		})
	})

	list, err := c.Bookings(context.Background(), 42, BookingQuery{Status: "confirmed"})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, models.BookingConfirmed, list.Data[0].Status.Normalize())
}

func TestNotificationEndpoints(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/notifications/unread-count":
			_, _ = w.Write([]byte(`{"unread_count":4}`))
		case "/notifications/unread":
			_, _ = w.Write([]byte(`{"notifications":[{"id":"system","title":"Hi"},{"id":12,"title":"Paid"}],"count":2}`))
		default:
			w.WriteHeader(http.StatusOK)
		}
	})

	ctx := context.Background()
	n, err := c.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	unread, err := c.UnreadNotifications(ctx, 20)
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 2)
	assert.Equal(t, "system", unread.Notifications[0].ID.String())
	assert.Equal(t, "12", unread.Notifications[1].ID.String())

	require.NoError(t, c.MarkNotificationRead(ctx, "12"))
	require.NoError(t, c.MarkAllNotificationsRead(ctx))

	assert.Equal(t, []string{
		"GET /notifications/unread-count",
		"GET /notifications/unread",
		"PUT /notifications/12/mark-read",
		"PUT /notifications/mark-all-read",
	}, seen)
}
