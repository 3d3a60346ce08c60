package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/booking"
	"github.com/dharmasatrya/ticketkini/internal/models"
)

// Source is the part of the API client the booking history page reads.
type Source interface {
	Bookings(ctx context.Context, userID int64, query api.BookingQuery) (*models.BookingList, error)
	PaymentHistory(ctx context.Context) ([]models.Payment, error)
}

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{Timeout: 10 * time.Second}
}

type Loader struct {
	source Source
	config Config
	logger *slog.Logger
}

type Result struct {
	Views               []booking.View `json:"bookings"`
	Total               int            `json:"total"`
	PaymentsUnavailable bool           `json:"payments_unavailable"`
}

func NewLoader(source Source, config Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, config: config, logger: logger}
}

// Load fetches bookings and payments concurrently and joins them. A
// payments failure degrades the page; a bookings failure fails it.
func (l *Loader) Load(ctx context.Context, userID int64, query api.BookingQuery) (*Result, error) {
	loadCtx, cancel := context.WithTimeout(ctx, l.config.Timeout)
	defer cancel()

	type bookingsResult struct {
		list *models.BookingList
		err  error
	}
	type paymentsResult struct {
		payments []models.Payment
		err      error
	}

	bookingsCh := make(chan bookingsResult, 1)
	paymentsCh := make(chan paymentsResult, 1)

	go func() {
		list, err := l.source.Bookings(loadCtx, userID, query)
		bookingsCh <- bookingsResult{list: list, err: err}
	}()
	go func() {
		payments, err := l.source.PaymentHistory(loadCtx)
		paymentsCh <- paymentsResult{payments: payments, err: err}
	}()

	br := <-bookingsCh
	pr := <-paymentsCh

	if br.err != nil {
		return nil, fmt.Errorf("history: bookings for user %d: %w", userID, br.err)
	}

	result := &Result{Total: br.list.Total}
	if pr.err != nil {
		l.logger.Warn("payment history unavailable", "user_id", userID, "error", pr.err)
		result.PaymentsUnavailable = true
	}
	result.Views = booking.Join(br.list.Data, pr.payments)
	if result.Total < len(result.Views) {
		result.Total = len(result.Views)
	}
	return result, nil
}
