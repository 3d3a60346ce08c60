// Package booking joins a user's bookings with their payment records for
// display. The join is read-only and runs over lists that were already
// fetched, so it needs no transaction.
package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/timeparse"
	"github.com/dharmasatrya/ticketkini/pkg/currency"
)

type View struct {
	Booking   models.Booking       `json:"booking"`
	Status    models.BookingStatus `json:"status"`
	Payment   *models.Payment      `json:"payment,omitempty"`
	CanCancel bool                 `json:"can_cancel"`

	// FinalAmount is set only when a successful payment or the booking
	// itself says what was charged.
	FinalAmount *float64 `json:"final_amount,omitempty"`
	Discount    float64  `json:"discount,omitempty"`

	TotalLabel    string `json:"total_label"`
	FinalLabel    string `json:"final_label,omitempty"`
	DiscountLabel string `json:"discount_label,omitempty"`
	RouteLabel    string `json:"route_label"`
	SeatLabel     string `json:"seat_label"`
}

// MatchPayment picks the payment shown next to a booking: the most recent
// successful one, otherwise the most recent of any status.
func MatchPayment(b models.Booking, payments []models.Payment) *models.Payment {
	var best, bestOK *models.Payment
	for i := range payments {
		p := &payments[i]
		if p.BookingID != b.ID {
			continue
		}
		if best == nil || newer(p, best) {
			best = p
		}
		if p.Succeeded() && (bestOK == nil || newer(p, bestOK)) {
			bestOK = p
		}
	}
	if bestOK != nil {
		return bestOK
	}
	return best
}

// newer orders by created_at, then id. Unparsable timestamps sort oldest.
func newer(a, b *models.Payment) bool {
	ta := paymentTime(a)
	tb := paymentTime(b)
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return a.ID > b.ID
}

func paymentTime(p *models.Payment) time.Time {
	t, err := timeparse.ParseTimestamp(p.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

func NewView(b models.Booking, payment *models.Payment) View {
	v := View{
		Booking:    b,
		Status:     b.Status.Normalize(),
		Payment:    payment,
		CanCancel:  b.Status.Cancellable(),
		TotalLabel: currency.FormatBDT(b.TotalPrice),
		RouteLabel: routeLabel(b),
		SeatLabel:  seatLabel(b),
	}

	switch {
	case payment != nil && payment.Succeeded():
		amount := payment.Amount
		v.FinalAmount = &amount
	case b.FinalAmount != nil:
		amount := *b.FinalAmount
		v.FinalAmount = &amount
	}

	if v.FinalAmount != nil {
		v.FinalLabel = currency.FormatBDT(*v.FinalAmount)
		if d := b.TotalPrice - *v.FinalAmount; d > 0 {
			v.Discount = d
			v.DiscountLabel = currency.FormatBDT(d)
		}
	}
	return v
}

// Join builds one view per booking, keeping the booking order.
func Join(bookings []models.Booking, payments []models.Payment) []View {
	views := make([]View, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, NewView(b, MatchPayment(b, payments)))
	}
	return views
}

func routeLabel(b models.Booking) string {
	if b.Route == nil {
		return "-"
	}
	return fmt.Sprintf("%s → %s", b.Route.Source, b.Route.Destination)
}

func seatLabel(b models.Booking) string {
	if len(b.Seats) == 0 {
		return "-"
	}
	parts := make([]string, len(b.Seats))
	for i, s := range b.Seats {
		parts[i] = strconv.Itoa(s)
	}
	label := strings.Join(parts, ", ")
	if b.SeatClass != "" {
		label += " (" + b.SeatClass + ")"
	}
	return label
}
