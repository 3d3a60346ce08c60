package models

import "strings"

type BookingStatus string

const (
	BookingCart      BookingStatus = "CART"
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingExpired   BookingStatus = "EXPIRED"
)

// Normalize upper-cases the status; the API is not consistent about case.
func (s BookingStatus) Normalize() BookingStatus {
	return BookingStatus(strings.ToUpper(strings.TrimSpace(string(s))))
}

func (s BookingStatus) Cancellable() bool {
	switch s.Normalize() {
	case BookingCart, BookingPending, BookingConfirmed:
		return true
	}
	return false
}

type BookingRoute struct {
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	ScheduleID    int64  `json:"schedule_id"`
}

type BookingVehicle struct {
	ID            int64  `json:"id"`
	VehicleName   string `json:"vehicle_name"`
	VehicleNumber string `json:"vehicle_number"`
	VehicleType   string `json:"vehicle_type"`
	OperatorName  string `json:"operator_name"`
}

type Booking struct {
	ID          int64           `json:"id"`
	PNR         string          `json:"pnr,omitempty"`
	Status      BookingStatus   `json:"status"`
	Seats       []int           `json:"seats"`
	SeatClass   string          `json:"seat_class,omitempty"`
	TravelDate  string          `json:"travel_date"`
	BookingDate string          `json:"booking_date"`
	TotalPrice  float64         `json:"total_price"`
	FinalAmount *float64        `json:"final_amount,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	Route       *BookingRoute   `json:"route,omitempty"`
	Vehicle     *BookingVehicle `json:"vehicle,omitempty"`
}

type BookingList struct {
	Success bool      `json:"success"`
	Data    []Booking `json:"data"`
	Total   int       `json:"total"`
	Offset  int       `json:"offset"`
	Limit   int       `json:"limit"`
}

type CancelResult struct {
	Message    string `json:"message"`
	BookingID  int64  `json:"booking_id"`
	Status     string `json:"status"`
	FreedSeats []int  `json:"freed_seats,omitempty"`
}

type Payment struct {
	ID            int64   `json:"id"`
	BookingID     int64   `json:"booking_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func (p Payment) Succeeded() bool {
	switch strings.ToUpper(strings.TrimSpace(p.Status)) {
	case "COMPLETED", "SUCCESS", "SUCCEEDED", "PAID":
		return true
	}
	return false
}
