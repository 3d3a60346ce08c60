package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/models"
)

type stubSource struct {
	bookings    []models.Booking
	bookingsErr error
	payments    []models.Payment
	paymentsErr error
	delay       time.Duration
}

func (s *stubSource) Bookings(ctx context.Context, userID int64, q api.BookingQuery) (*models.BookingList, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.bookingsErr != nil {
		return nil, s.bookingsErr
	}
	return &models.BookingList{Success: true, Data: s.bookings, Total: len(s.bookings)}, nil
}

func (s *stubSource) PaymentHistory(ctx context.Context) ([]models.Payment, error) {
	return s.payments, s.paymentsErr
}

func TestLoadJoinsPayments(t *testing.T) {
	src := &stubSource{
		bookings: []models.Booking{{ID: 1, TotalPrice: 1000}, {ID: 2, TotalPrice: 500}},
		payments: []models.Payment{{ID: 9, BookingID: 1, Status: "COMPLETED", Amount: 900}},
	}

	res, err := NewLoader(src, DefaultConfig(), nil).Load(context.Background(), 3, api.BookingQuery{})
	require.NoError(t, err)
	require.Len(t, res.Views, 2)
	assert.Equal(t, 2, res.Total)
	assert.False(t, res.PaymentsUnavailable)
	assert.Equal(t, 100.0, res.Views[0].Discount)
	assert.Nil(t, res.Views[1].Payment)
}

func TestLoadDegradesWithoutPayments(t *testing.T) {
	src := &stubSource{
		bookings:    []models.Booking{{ID: 1, TotalPrice: 1000}},
		paymentsErr: errors.New("payment service down"),
	}

	res, err := NewLoader(src, DefaultConfig(), nil).Load(context.Background(), 3, api.BookingQuery{})
	require.NoError(t, err)
	assert.True(t, res.PaymentsUnavailable)
	require.Len(t, res.Views, 1)
	assert.Nil(t, res.Views[0].FinalAmount)
}

func TestLoadFailsWithoutBookings(t *testing.T) {
	boom := errors.New("bookings down")
	_, err := NewLoader(&stubSource{bookingsErr: boom}, DefaultConfig(), nil).
		Load(context.Background(), 3, api.BookingQuery{})
	assert.ErrorIs(t, err, boom)
}

func TestLoadTimesOut(t *testing.T) {
	src := &stubSource{delay: time.Second}
	_, err := NewLoader(src, Config{Timeout: 20 * time.Millisecond}, nil).
		Load(context.Background(), 3, api.BookingQuery{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
