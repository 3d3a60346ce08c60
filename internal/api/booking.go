package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/ratelimit"
)

type BookingQuery struct {
	Status models.BookingStatus
	Limit  int
	Offset int
}

func (c *Client) Bookings(ctx context.Context, userID int64, query BookingQuery) (*models.BookingList, error) {
	q := url.Values{}
	if query.Status != "" {
		q.Set("status_filter", string(query.Status.Normalize()))
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		q.Set("offset", strconv.Itoa(query.Offset))
	}

	var list models.BookingList
	path := "/booking/" + strconv.FormatInt(userID, 10)
	if err := c.do(ctx, ratelimit.GroupBooking, http.MethodGet, path, q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) Booking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	var b models.Booking
	path := "/booking/details/" + strconv.FormatInt(bookingID, 10)
	if err := c.do(ctx, ratelimit.GroupBooking, http.MethodGet, path, nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID int64, reason string) (*models.CancelResult, error) {
	var q url.Values
	if reason != "" {
		q = url.Values{"reason": {reason}}
	}

	var result models.CancelResult
	path := "/cancel/booking/" + strconv.FormatInt(bookingID, 10)
	if err := c.do(ctx, ratelimit.GroupBooking, http.MethodPost, path, q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) PaymentHistory(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.do(ctx, ratelimit.GroupPayment, http.MethodGet, "/payment/history", nil, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
