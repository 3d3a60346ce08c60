package ranking

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/timeparse"
)

type SortKey string

const (
	PriceLowHigh   SortKey = "price_low_high"
	PriceHighLow   SortKey = "price_high_low"
	RatingHighLow  SortKey = "rating"
	DepartureEarly SortKey = "departure_early"
	DepartureLate  SortKey = "departure_late"
	DurationShort  SortKey = "duration_short"
	DurationLong   SortKey = "duration_long"

	DefaultSortKey = DepartureEarly
)

var SortKeys = []SortKey{
	PriceLowHigh, PriceHighLow, RatingHighLow,
	DepartureEarly, DepartureLate, DurationShort, DurationLong,
}

// ParseSortKey falls back to the default for unknown input.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range SortKeys {
		if k == key {
			return k
		}
	}
	return DefaultSortKey
}

// Sort returns a sorted copy. Ties keep their incoming order.
func Sort(trips []models.Trip, key SortKey) []models.Trip {
	sorted := make([]models.Trip, len(trips))
	copy(sorted, trips)
	if len(sorted) < 2 {
		return sorted
	}

	switch ParseSortKey(string(key)) {
	case PriceLowHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].MinClassPrice() < sorted[j].MinClassPrice()
		})

	case PriceHighLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].MinClassPrice() > sorted[j].MinClassPrice()
		})

	case RatingHighLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rating > sorted[j].Rating
		})

	case DepartureLate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return departureMinutes(sorted[i]) > departureMinutes(sorted[j])
		})

	case DurationShort:
		sort.SliceStable(sorted, func(i, j int) bool {
			return timeparse.DurationMinutes(sorted[i].Duration) < timeparse.DurationMinutes(sorted[j].Duration)
		})

	case DurationLong:
		sort.SliceStable(sorted, func(i, j int) bool {
			return timeparse.DurationMinutes(sorted[i].Duration) > timeparse.DurationMinutes(sorted[j].Duration)
		})

	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return departureMinutes(sorted[i]) < departureMinutes(sorted[j])
		})
	}

	return sorted
}

// departureMinutes treats unparsable times as midnight.
func departureMinutes(t models.Trip) int {
	m, err := timeparse.ClockMinutes(t.DepartureTime)
	if err != nil {
		return 0
	}
	return m
}
