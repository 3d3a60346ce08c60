package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/ticketkini/internal/booking"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/notify"
	"github.com/dharmasatrya/ticketkini/internal/results"
)

func sampleTrip() models.Trip {
	return models.Trip{
		ID:              5,
		OperatorName:    "Green Line",
		VehicleType:     "bus",
		SourceName:      "Dhaka",
		DestinationName: "Chittagong",
		DepartureTime:   "07:30",
		ArrivalTime:     "13:45",
		Duration:        "6:15",
		ClassPrices:     map[string]float64{"economy": 1250, "business": 2100},
		AvailableSeats:  map[string]models.SeatAvailability{"economy": {Available: 4}, "business": {Available: 0}},
		Amenities:       []string{"AC", "WiFi"},
		Rating:          4.46,
		TotalReviews:    120,
	}
}

func TestNewTripCard(t *testing.T) {
	card := NewTripCard(sampleTrip())
	assert.Equal(t, "BDT 1,250", card.Price)
	assert.Equal(t, "6h 15m", card.Duration)
	assert.Equal(t, "AC", card.VehicleClass)
	assert.Equal(t, 4, card.SeatsLeft)
	assert.False(t, card.SoldOut)
	assert.False(t, card.Book.Disabled)
	assert.Equal(t, "/booking?schedule_id=5", card.Book.Href)
	assert.Equal(t, "4.5 (120 reviews)", card.Rating)
}

func TestTripCardSoldOut(t *testing.T) {
	trip := sampleTrip()
	trip.AvailableSeats = map[string]models.SeatAvailability{"economy": {Available: 0}}
	card := NewTripCard(trip)
	assert.True(t, card.SoldOut)
	assert.True(t, card.Book.Disabled)
	assert.Equal(t, "Sold Out", card.Book.Label)

	trip.AvailableSeats = nil
	assert.False(t, NewTripCard(trip).SoldOut, "unknown availability is bookable")
}

func TestNavbar(t *testing.T) {
	out := NewNavbar(nil, 0, "/search")
	assert.Equal(t, "Login", out.Action.Label)
	require.Len(t, out.Links, 2)
	assert.True(t, out.Links[1].Active)

	admin := NewNavbar(&models.User{Name: "Rina", IsAdmin: true}, 3, "/bookings")
	assert.Equal(t, "Logout", admin.Action.Label)
	assert.Equal(t, 3, admin.Unread)
	labels := make([]string, len(admin.Links))
	for i, l := range admin.Links {
		labels[i] = l.Label
	}
	assert.Equal(t, []string{"Home", "Search", "My Bookings", "Notifications", "Admin"}, labels)
	assert.True(t, admin.Links[2].Active)

	user := NewNavbar(&models.User{Name: "Sami"}, 0, "/")
	assert.Len(t, user.Links, 4)
}

func TestCarouselWraps(t *testing.T) {
	c := NewCarousel([]Testimonial{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "a", cur.Name)

	prev, _ := c.Prev()
	assert.Equal(t, "c", prev.Name)
	next, _ := c.Next()
	assert.Equal(t, "a", next.Name)
	jumped, _ := c.Go(7)
	assert.Equal(t, "b", jumped.Name)

	_, ok = NewCarousel(nil).Next()
	assert.False(t, ok)
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", Stars(3))
	assert.Equal(t, "★★★★★", Stars(9))
}

func TestFooter(t *testing.T) {
	f := NewFooter(2025)
	assert.Contains(t, f.Copyright, "2025")
	assert.NotEmpty(t, f.Links)
}

func TestTerminalRendering(t *testing.T) {
	out := RenderTripCard(NewTripCard(sampleTrip()))
	assert.Contains(t, out, "Green Line")
	assert.Contains(t, out, "BDT 1,250")

	page := RenderResults(results.View{
		Trips: []models.Trip{sampleTrip()}, Page: 1, TotalPages: 2,
		CountLabel: "1 of 3 results", ShowClearAll: true,
	})
	assert.Contains(t, page, "1 of 3 results")
	assert.Contains(t, page, "[Clear All]")
	assert.Contains(t, page, "page 1 of 2")

	assert.Empty(t, RenderPager(1, 1))

	toast := RenderToast(notify.Toast{Title: "Booking confirmed", Message: "See you on board", Level: notify.LevelSuccess})
	assert.Contains(t, toast, "Booking confirmed")

	bv := booking.NewView(models.Booking{ID: 9, Status: "confirmed", TotalPrice: 800}, nil)
	assert.Contains(t, RenderBooking(bv), "Booking #9")
}

func TestTerminalPresenter(t *testing.T) {
	var lines []string
	p := TerminalPresenter{Print: func(s string) { lines = append(lines, s) }}
	p.Toast(notify.Toast{Title: "Hello"})
	p.UpdateBadge(2)
	p.UpdateDropdown(nil)

	require.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[0], "Hello"))
	assert.Contains(t, lines[1], "unread: 2")
}

func TestBellNotifier(t *testing.T) {
	assert.Equal(t, notify.PermissionDenied, BellNotifier{}.Permission())

	var out bytes.Buffer
	bell := BellNotifier{Out: &out}
	assert.Equal(t, notify.PermissionGranted, bell.Permission())
	require.NoError(t, bell.Notify(models.Notification{ID: "3", Title: "Seat released"}))
	assert.Equal(t, "\a", out.String())
}
