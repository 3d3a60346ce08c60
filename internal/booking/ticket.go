package booking

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// TicketPDF renders a plain one-page e-ticket for the booking.
func TicketPDF(v View) ([]byte, error) {
	b := v.Booking

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TICKETKINI E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Booking ID : " + fmt.Sprint(b.ID),
		"PNR        : " + safe(b.PNR, "-"),
		"Status     : " + string(v.Status),
		"Route      : " + ascii(v.RouteLabel),
		"Travel date: " + safe(b.TravelDate, "-"),
		"Seats      : " + v.SeatLabel,
	}
	if b.Route != nil {
		lines = append(lines,
			"Departure  : "+safe(b.Route.DepartureTime, "-"),
			"Arrival    : "+safe(b.Route.ArrivalTime, "-"),
		)
	}
	if b.Vehicle != nil {
		lines = append(lines,
			"Operator   : "+safe(b.Vehicle.OperatorName, "-"),
			"Vehicle    : "+strings.TrimSpace(b.Vehicle.VehicleName+" "+b.Vehicle.VehicleNumber),
		)
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Total price: "+v.TotalLabel)
	pdf.Ln(7)
	if v.DiscountLabel != "" {
		pdf.Cell(0, 7, "Discount   : "+v.DiscountLabel)
		pdf.Ln(7)
	}
	if v.FinalLabel != "" {
		pdf.Cell(0, 7, "Amount paid: "+v.FinalLabel)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this ticket with a valid ID when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("booking: render ticket %d: %w", b.ID, err)
	}
	return buf.Bytes(), nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// ascii swaps the route arrow for a core-font friendly one.
func ascii(s string) string {
	return strings.ReplaceAll(s, "→", "->")
}
