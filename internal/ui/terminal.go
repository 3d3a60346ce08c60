package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dharmasatrya/ticketkini/internal/booking"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/notify"
	"github.com/dharmasatrya/ticketkini/internal/results"
	"github.com/dharmasatrya/ticketkini/pkg/currency"
)

var (
	accent  = lipgloss.Color("36")
	muted   = lipgloss.Color("245")
	danger  = lipgloss.Color("196")
	warning = lipgloss.Color("214")
	success = lipgloss.Color("42")
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(muted).
	Padding(0, 1)

func RenderTripCard(card TripCard) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(card.Operator)
	class := lipgloss.NewStyle().Foreground(muted).Render(card.VehicleType + " · " + card.VehicleClass)
	price := lipgloss.NewStyle().Bold(true).Render(card.Price)

	times := fmt.Sprintf("%s  →  %s   %s", card.Departure, card.Arrival, card.Duration)

	seats := fmt.Sprintf("%d seats left", card.SeatsLeft)
	seatStyle := lipgloss.NewStyle().Foreground(success)
	if card.SoldOut {
		seats = "Sold out"
		seatStyle = seatStyle.Foreground(danger)
	}

	lines := []string{
		title + "  " + class,
		card.Route,
		times,
		price + "  " + seatStyle.Render(seats),
	}
	if card.Rating != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(muted).Render(card.Rating))
	}
	if len(card.Amenities) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(muted).Render(strings.Join(card.Amenities, ", ")))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// RenderResults draws one results page with its counter and pager.
func RenderResults(v results.View) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(v.CountLabel))
	if v.ShowClearAll {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(accent).Render("[Clear All]"))
	}
	if v.Total > 0 {
		bounds := v.Facets.PriceBounds
		b.WriteString("  " + lipgloss.NewStyle().Foreground(muted).Render(currency.Range(currency.DefaultCode, bounds.Min, bounds.Max)))
	}
	b.WriteString("\n")

	for _, card := range TripCards(v.Trips) {
		b.WriteString(RenderTripCard(card))
		b.WriteString("\n")
	}
	if len(v.Trips) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(muted).Render("No trips match these filters."))
		b.WriteString("\n")
	}
	b.WriteString(RenderPager(v.Page, v.TotalPages))
	return b.String()
}

func RenderPager(page, total int) string {
	if total <= 1 {
		return ""
	}
	prev, next := "‹ prev", "next ›"
	dim := lipgloss.NewStyle().Foreground(muted)
	if page <= 1 {
		prev = dim.Render(prev)
	}
	if page >= total {
		next = dim.Render(next)
	}
	return fmt.Sprintf("%s  page %d of %d  %s", prev, page, total, next)
}

func RenderToast(t notify.Toast) string {
	color := accent
	switch t.Level {
	case notify.LevelSuccess:
		color = success
	case notify.LevelWarning:
		color = warning
	case notify.LevelError:
		color = danger
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1)

	body := lipgloss.NewStyle().Bold(true).Render(t.Title)
	if t.Message != "" {
		body += "\n" + t.Message
	}
	return style.Render(body)
}

func RenderBooking(v booking.View) string {
	b := v.Booking
	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Booking #%d", b.ID))
	if b.PNR != "" {
		header += lipgloss.NewStyle().Foreground(muted).Render("  PNR " + b.PNR)
	}

	lines := []string{
		header + "  " + statusBadge(string(v.Status)),
		v.RouteLabel + "  " + b.TravelDate,
		"Seats: " + v.SeatLabel,
		"Total: " + v.TotalLabel,
	}
	if v.DiscountLabel != "" {
		lines = append(lines, "Discount: "+v.DiscountLabel)
	}
	if v.FinalLabel != "" {
		lines = append(lines, "Paid: "+v.FinalLabel)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func statusBadge(status string) string {
	color := muted
	switch status {
	case "CONFIRMED", "COMPLETED":
		color = success
	case "PENDING", "CART":
		color = warning
	case "CANCELLED", "EXPIRED":
		color = danger
	}
	return lipgloss.NewStyle().Foreground(color).Render(status)
}

// TerminalPresenter prints notification toasts and badge changes through
// Print.
type TerminalPresenter struct {
	Print func(string)
}

func (p TerminalPresenter) Toast(t notify.Toast) { p.Print(RenderToast(t)) }

func (p TerminalPresenter) UpdateBadge(unread int) {
	p.Print(lipgloss.NewStyle().Foreground(muted).Render(fmt.Sprintf("unread: %d", unread)))
}

func (p TerminalPresenter) UpdateDropdown(items []models.Notification) {}

// BellNotifier stands in for desktop notifications on a terminal: it rings
// the bell on Out. A nil Out means permission was never granted.
type BellNotifier struct {
	Out io.Writer
}

func (b BellNotifier) Permission() notify.Permission {
	if b.Out == nil {
		return notify.PermissionDenied
	}
	return notify.PermissionGranted
}

func (b BellNotifier) Notify(n models.Notification) error {
	_, err := io.WriteString(b.Out, "\a")
	return err
}
