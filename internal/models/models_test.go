package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripPrices(t *testing.T) {
	trip := Trip{ClassPrices: map[string]float64{"economy": 850, "business": 1200, "broken": 0}}
	assert.Equal(t, 850.0, trip.MinClassPrice())
	assert.Equal(t, 850.0, trip.DisplayPrice())

	trip.SchedulePrice = 700
	assert.Equal(t, 700.0, trip.DisplayPrice())
	assert.Equal(t, 850.0, trip.MinClassPrice())

	assert.Equal(t, 0.0, Trip{}.DisplayPrice())
}

func TestTripDecodesRemotePayload(t *testing.T) {
	payload := `{
		"id": 7, "vehicle_id": 3, "vehicle_number": "DHK-1010", "vehicle_type": "bus",
		"operator_name": "Green Line", "operator_id": 2,
		"source_name": "Dhaka", "destination_name": "Chittagong",
		"departure_time": "07:30", "arrival_time": "13:45", "duration": "6h 15m",
		"travel_date": "2025-06-29",
		"class_prices": {"economy": 900, "business": 1500},
		"available_seats": {"economy": {"total": 30, "booked": 10, "available": 20}, "business": 4},
		"total_seats": 40, "amenities": ["AC", "WiFi"], "rating": 4.5, "total_reviews": 12
	}`

	var trip Trip
	require.NoError(t, json.Unmarshal([]byte(payload), &trip))
	assert.Equal(t, int64(7), trip.ID)
	assert.Equal(t, 24, trip.SeatsLeft())
	assert.Equal(t, 20, trip.AvailableSeats["economy"].Available)
	assert.Equal(t, 4, trip.AvailableSeats["business"].Available)
}

func TestSearchRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
		err  error
	}{
		{"missing source", SearchRequest{Destination: "CTG", TravelDate: "2025-06-29"}, ErrMissingSource},
		{"missing destination", SearchRequest{Source: "DHK", TravelDate: "2025-06-29"}, ErrMissingDestination},
		{"missing date", SearchRequest{Source: "DHK", Destination: "CTG"}, ErrMissingTravelDate},
		{"bad date", SearchRequest{Source: "DHK", Destination: "CTG", TravelDate: "29/06/2025"}, ErrInvalidTravelDate},
		{"same endpoints", SearchRequest{Source: "dhk", Destination: "DHK", TravelDate: "2025-06-29"}, ErrSameEndpoints},
		{"valid", SearchRequest{Source: " DHK ", Destination: "CTG", TravelDate: "2025-06-29"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.err == nil {
				require.NoError(t, err)
				assert.Equal(t, "DHK", tt.req.Source)
				assert.Equal(t, 1, tt.req.Page)
				assert.Equal(t, DefaultSearchLimit, tt.req.Limit)
				assert.Equal(t, "departure_time", tt.req.SortBy)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFlexibleID(t *testing.T) {
	var n Notification
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "title": "t"}`), &n))
	assert.Equal(t, FlexibleID("42"), n.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "system"}`), &n))
	assert.Equal(t, "system", n.ID.String())

	out, err := json.Marshal(FlexibleID("42"))
	require.NoError(t, err)
	assert.Equal(t, "42", string(out))
}

func TestPaymentSucceeded(t *testing.T) {
	assert.True(t, Payment{Status: "COMPLETED"}.Succeeded())
	assert.True(t, Payment{Status: "success"}.Succeeded())
	assert.False(t, Payment{Status: "FAILED"}.Succeeded())
	assert.False(t, Payment{Status: "PENDING"}.Succeeded())
}
