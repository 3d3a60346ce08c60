// Package ui holds the reusable page components as plain view models.
// The server returns them as JSON and the terminal client draws them
// with lipgloss.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dharmasatrya/ticketkini/internal/filter"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/timeparse"
	"github.com/dharmasatrya/ticketkini/pkg/currency"
)

type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantDanger    Variant = "danger"
	VariantLink      Variant = "link"
)

type Button struct {
	Label    string  `json:"label"`
	Variant  Variant `json:"variant"`
	Href     string  `json:"href,omitempty"`
	Disabled bool    `json:"disabled"`
}

type TripCard struct {
	TripID       int64    `json:"trip_id"`
	Operator     string   `json:"operator"`
	VehicleType  string   `json:"vehicle_type"`
	VehicleClass string   `json:"vehicle_class"`
	Route        string   `json:"route"`
	Departure    string   `json:"departure"`
	Arrival      string   `json:"arrival"`
	Duration     string   `json:"duration"`
	Price        string   `json:"price"`
	SeatsLeft    int      `json:"seats_left"`
	SoldOut      bool     `json:"sold_out"`
	Amenities    []string `json:"amenities,omitempty"`
	Rating       string   `json:"rating,omitempty"`
	Book         Button   `json:"book"`
}

func NewTripCard(t models.Trip) TripCard {
	soldOut := len(t.AvailableSeats) > 0 && t.SeatsLeft() == 0

	duration := t.Duration
	if m := timeparse.DurationMinutes(t.Duration); m > 0 {
		duration = timeparse.FormatMinutes(m)
	}

	card := TripCard{
		TripID:       t.ID,
		Operator:     t.OperatorName,
		VehicleType:  t.VehicleType,
		VehicleClass: filter.VehicleClass(t),
		Route:        t.SourceName + " → " + t.DestinationName,
		Departure:    t.DepartureTime,
		Arrival:      t.ArrivalTime,
		Duration:     duration,
		Price:        currency.FormatBDT(t.DisplayPrice()),
		SeatsLeft:    t.SeatsLeft(),
		SoldOut:      soldOut,
		Amenities:    t.Amenities,
		Book: Button{
			Label:    "Book Now",
			Variant:  VariantPrimary,
			Href:     "/booking?schedule_id=" + strconv.FormatInt(t.ID, 10),
			Disabled: soldOut,
		},
	}
	if soldOut {
		card.Book.Label = "Sold Out"
	}
	if t.TotalReviews > 0 {
		card.Rating = fmt.Sprintf("%.1f (%d reviews)", t.Rating, t.TotalReviews)
	}
	return card
}

func TripCards(trips []models.Trip) []TripCard {
	cards := make([]TripCard, len(trips))
	for i, t := range trips {
		cards[i] = NewTripCard(t)
	}
	return cards
}

type Link struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active,omitempty"`
}

type Navbar struct {
	Brand    string `json:"brand"`
	Links    []Link `json:"links"`
	UserName string `json:"user_name,omitempty"`
	Unread   int    `json:"unread"`
	Action   Button `json:"action"`
}

// NewNavbar lays out the links for the current user; a nil user gets the
// logged-out bar.
func NewNavbar(user *models.User, unread int, current string) Navbar {
	nav := Navbar{Brand: "TicketKini"}
	links := []Link{{Label: "Home", Href: "/"}, {Label: "Search", Href: "/search"}}

	if user == nil {
		nav.Action = Button{Label: "Login", Variant: VariantPrimary, Href: "/login"}
	} else {
		links = append(links,
			Link{Label: "My Bookings", Href: "/bookings"},
			Link{Label: "Notifications", Href: "/notifications"},
		)
		if user.IsAdmin {
			links = append(links, Link{Label: "Admin", Href: "/admin"})
		}
		nav.UserName = user.Name
		nav.Unread = unread
		nav.Action = Button{Label: "Logout", Variant: VariantSecondary, Href: "/logout"}
	}

	for i := range links {
		links[i].Active = links[i].Href == current
	}
	nav.Links = links
	return nav
}

type Footer struct {
	Copyright string `json:"copyright"`
	Links     []Link `json:"links"`
}

func NewFooter(year int) Footer {
	return Footer{
		Copyright: fmt.Sprintf("© %d TicketKini. All rights reserved.", year),
		Links: []Link{
			{Label: "About", Href: "/about"},
			{Label: "Help", Href: "/help"},
			{Label: "Terms", Href: "/terms"},
			{Label: "Privacy", Href: "/privacy"},
		},
	}
}

type Testimonial struct {
	Name   string `json:"name"`
	Route  string `json:"route"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating"`
}

// Carousel rotates through testimonials and wraps at both ends.
type Carousel struct {
	items []Testimonial
	index int
}

func NewCarousel(items []Testimonial) *Carousel {
	return &Carousel{items: items}
}

func (c *Carousel) Len() int { return len(c.items) }

func (c *Carousel) Index() int { return c.index }

func (c *Carousel) Current() (Testimonial, bool) {
	if len(c.items) == 0 {
		return Testimonial{}, false
	}
	return c.items[c.index], true
}

func (c *Carousel) Next() (Testimonial, bool) {
	return c.Go(c.index + 1)
}

func (c *Carousel) Prev() (Testimonial, bool) {
	return c.Go(c.index - 1)
}

// Go jumps to i, taken modulo the number of items.
func (c *Carousel) Go(i int) (Testimonial, bool) {
	n := len(c.items)
	if n == 0 {
		return Testimonial{}, false
	}
	c.index = ((i % n) + n) % n
	return c.items[c.index], true
}

func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// DefaultTestimonials are shown on the landing page.
func DefaultTestimonials() []Testimonial {
	return []Testimonial{
		{Name: "Nusrat J.", Route: "Dhaka → Chittagong", Quote: "Booked a night coach in two minutes and got my seat on the first try.", Rating: 5},
		{Name: "Arif H.", Route: "Sylhet → Dhaka", Quote: "Clear prices and the e-ticket worked at the counter.", Rating: 4},
		{Name: "Farzana R.", Route: "Dhaka → Cox's Bazar", Quote: "The reminder the day before my trip saved me.", Rating: 5},
	}
}
