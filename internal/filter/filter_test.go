package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/ticketkini/internal/models"
)

func sampleTrips() []models.Trip {
	return []models.Trip{
		{ID: 1, VehicleID: 10, OperatorName: "Green Line", SourceName: "Dhaka", DestinationName: "Chittagong",
			DepartureTime: "07:00", ArrivalTime: "13:00", Amenities: []string{"AC", "WiFi"},
			ClassPrices: map[string]float64{"economy": 1200}},
		{ID: 2, VehicleID: 11, OperatorName: "Hanif", SourceName: "Dhaka", DestinationName: "Chittagong",
			DepartureTime: "13:30", ArrivalTime: "19:30", Amenities: []string{"Non-AC"},
			ClassPrices: map[string]float64{"economy": 600}},
		{ID: 3, VehicleID: 12, OperatorName: "Shyamoli", SourceName: "Dhaka", DestinationName: "Chittagong",
			DepartureTime: "22:15", ArrivalTime: "04:15",
			ClassPrices: map[string]float64{"ac_sleeper": 1800, "economy": 900}},
		{ID: 4, VehicleID: 13, OperatorName: "Hanif", SourceName: "Dhaka", DestinationName: "Chittagong",
			DepartureTime: "02:00", ArrivalTime: "08:00",
			ClassPrices: map[string]float64{"economy": 550}},
	}
}

func TestDedup(t *testing.T) {
	trips := sampleTrips()
	dup := trips[1]
	dup.ID = 99
	input := append([]models.Trip{}, trips...)
	input = append(input, dup, trips[0])

	out := Dedup(input)
	require.Len(t, out, 4)
	assert.Equal(t, int64(2), out[1].ID, "first occurrence wins")

	assert.Equal(t, out, Dedup(out), "dedup is idempotent")
}

func TestDedupKeyIgnoresTripID(t *testing.T) {
	a := models.Trip{ID: 1, VehicleID: 5, SourceName: "A", DestinationName: "B", DepartureTime: "08:00", ArrivalTime: "10:00"}
	b := a
	b.ID = 2
	assert.Equal(t, KeyOf(a), KeyOf(b))

	b.ArrivalTime = "10:05"
	assert.NotEqual(t, KeyOf(a), KeyOf(b))
}

func TestVehicleClass(t *testing.T) {
	tests := []struct {
		name string
		trip models.Trip
		want string
	}{
		{"amenity marker", models.Trip{Amenities: []string{"WiFi", "AC"}}, ClassAC},
		{"class key marker", models.Trip{ClassPrices: map[string]float64{"AC_BUSINESS": 100}}, ClassAC},
		{"air conditioned", models.Trip{Amenities: []string{"Air Conditioned"}}, ClassAC},
		{"explicit non ac", models.Trip{Amenities: []string{"Non-AC"}}, ClassNonAC},
		{"non ac class", models.Trip{ClassPrices: map[string]float64{"non ac": 100}}, ClassNonAC},
		{"no marker", models.Trip{Amenities: []string{"Blanket"}}, ClassNonAC},
		{"substring only", models.Trip{Amenities: []string{"Snack Pack"}}, ClassNonAC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VehicleClass(tt.trip))
		})
	}
}

func TestWindowForHour(t *testing.T) {
	tests := map[int]models.DepartureWindow{
		0: models.WindowNight, 2: models.WindowNight, 5: models.WindowNight,
		6: models.WindowEarlyMorning, 7: models.WindowEarlyMorning, 11: models.WindowEarlyMorning,
		12: models.WindowAfternoon, 17: models.WindowAfternoon,
		18: models.WindowEvening, 23: models.WindowEvening,
	}
	for hour, want := range tests {
		assert.Equal(t, want, WindowForHour(hour), "hour %d", hour)
	}

	assert.Equal(t, models.WindowNight, DepartureWindowOf(models.Trip{DepartureTime: "n/a"}))
}

func TestDeriveFacets(t *testing.T) {
	facets := DeriveFacets(sampleTrips())

	assert.Equal(t, []models.FacetValue{{Value: "AC", Count: 2}, {Value: "Non-AC", Count: 2}}, facets.VehicleTypes)
	assert.Equal(t, []models.FacetValue{
		{Value: "Green Line", Count: 1},
		{Value: "Hanif", Count: 2},
		{Value: "Shyamoli", Count: 1},
	}, facets.Operators)
	assert.Equal(t, models.PriceRange{Min: 550, Max: 1200}, facets.PriceBounds)
	require.Len(t, facets.Departure, 4)
	assert.Equal(t, models.FacetValue{Value: "night", Count: 1}, facets.Departure[3])

	empty := DeriveFacets(nil)
	assert.Empty(t, empty.Operators)
	assert.Equal(t, models.PriceRange{}, empty.PriceBounds)
}

func TestApply(t *testing.T) {
	trips := sampleTrips()

	tests := []struct {
		name  string
		state models.FilterState
		ids   []int64
	}{
		{"no filters", models.FilterState{}, []int64{1, 2, 3, 4}},
		{"ac only", models.FilterState{VehicleTypes: []string{"AC"}}, []int64{1, 3}},
		{"both classes", models.FilterState{VehicleTypes: []string{"ac", "non-ac"}}, []int64{1, 2, 3, 4}},
		{"evening", models.FilterState{Departure: models.WindowEvening}, []int64{3}},
		{"operator", models.FilterState{Operators: []string{"Hanif"}}, []int64{2, 4}},
		{"price", models.FilterState{Price: &models.PriceRange{Min: 560, Max: 1000}}, []int64{2, 3}},
		{"combined", models.FilterState{VehicleTypes: []string{"Non-AC"}, Operators: []string{"hanif"}, Departure: models.WindowNight}, []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Apply(trips, tt.state)
			ids := make([]int64, len(out))
			for i, trip := range out {
				ids[i] = trip.ID
			}
			assert.Equal(t, tt.ids, ids)

			assert.Equal(t, out, Apply(out, tt.state), "reapplying is a no-op")
		})
	}

	assert.Len(t, trips, 4, "input untouched")
}

func TestApplyIsSubset(t *testing.T) {
	var trips []models.Trip
	for i := 0; i < 30; i++ {
		trips = append(trips, models.Trip{
			ID:            int64(i),
			VehicleID:     int64(i % 7),
			OperatorName:  fmt.Sprintf("Operator %d", i%3),
			DepartureTime: fmt.Sprintf("%02d:00", i%24),
			ClassPrices:   map[string]float64{"economy": float64(500 + i*10)},
		})
	}
	unique := Dedup(trips)
	state := models.FilterState{Operators: []string{"Operator 1"}, Price: &models.PriceRange{Min: 600, Max: 700}}

	keys := make(map[DedupKey]bool)
	for _, trip := range unique {
		keys[KeyOf(trip)] = true
	}
	for _, out := range Apply(unique, state) {
		assert.True(t, keys[KeyOf(out)])
	}
}

func TestIsActive(t *testing.T) {
	facets := DeriveFacets(sampleTrips())

	assert.False(t, IsActive(models.FilterState{}, facets))
	assert.True(t, IsActive(models.FilterState{VehicleTypes: []string{"AC"}}, facets))
	assert.True(t, IsActive(models.FilterState{Departure: models.WindowEvening}, facets))
	assert.True(t, IsActive(models.FilterState{Operators: []string{"Hanif"}}, facets))
	assert.False(t, IsActive(models.FilterState{Price: &models.PriceRange{Min: 550, Max: 1200}}, facets))
	assert.False(t, IsActive(models.FilterState{Price: &models.PriceRange{Min: 100, Max: 5000}}, facets))
	assert.True(t, IsActive(models.FilterState{Price: &models.PriceRange{Min: 550, Max: 1000}}, facets))
}
