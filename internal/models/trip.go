package models

import (
	"bytes"
	"encoding/json"
)

// SeatAvailability is the per-class seat summary attached to a trip.
type SeatAvailability struct {
	Total       int   `json:"total"`
	Booked      int   `json:"booked"`
	Available   int   `json:"available"`
	SeatNumbers []int `json:"seat_numbers,omitempty"`
}

// UnmarshalJSON accepts both the object form and a bare available count,
// which older schedules still return.
func (s *SeatAvailability) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		if bytes.Equal(data, []byte("null")) {
			*s = SeatAvailability{}
			return nil
		}
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = SeatAvailability{Available: int(n)}
		return nil
	}

	type plain SeatAvailability
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = SeatAvailability(p)
	return nil
}

type Trip struct {
	ID              int64                       `json:"id"`
	VehicleID       int64                       `json:"vehicle_id"`
	VehicleNumber   string                      `json:"vehicle_number"`
	VehicleType     string                      `json:"vehicle_type"`
	OperatorName    string                      `json:"operator_name"`
	OperatorID      int64                       `json:"operator_id"`
	SourceName      string                      `json:"source_name"`
	DestinationName string                      `json:"destination_name"`
	DepartureTime   string                      `json:"departure_time"`
	ArrivalTime     string                      `json:"arrival_time"`
	Duration        string                      `json:"duration"`
	TravelDate      string                      `json:"travel_date"`
	ClassPrices     map[string]float64          `json:"class_prices"`
	SchedulePrice   float64                     `json:"price,omitempty"`
	AvailableSeats  map[string]SeatAvailability `json:"available_seats,omitempty"`
	TotalSeats      int                         `json:"total_seats"`
	Amenities       []string                    `json:"amenities,omitempty"`
	Rating          float64                     `json:"rating"`
	TotalReviews    int                         `json:"total_reviews"`
}

// MinClassPrice is the cheapest positive class price, or 0 when the trip
// carries no usable price.
func (t Trip) MinClassPrice() float64 {
	minPrice := 0.0
	for _, p := range t.ClassPrices {
		if p <= 0 {
			continue
		}
		if minPrice == 0 || p < minPrice {
			minPrice = p
		}
	}
	return minPrice
}

// DisplayPrice prefers the schedule-level override when it is set.
func (t Trip) DisplayPrice() float64 {
	if t.SchedulePrice > 0 {
		return t.SchedulePrice
	}
	return t.MinClassPrice()
}

func (t Trip) SeatsLeft() int {
	total := 0
	for _, s := range t.AvailableSeats {
		if s.Available > 0 {
			total += s.Available
		}
	}
	return total
}

type Location struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	City         string `json:"city"`
	LocationType string `json:"location_type,omitempty"`
	FullName     string `json:"full_name"`
	IsMajorHub   bool   `json:"is_major_hub,omitempty"`
}
