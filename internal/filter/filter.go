package filter

import (
	"strings"

	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/timeparse"
)

const (
	ClassAC    = "AC"
	ClassNonAC = "Non-AC"
)

// Apply returns the trips matching every constraint in state. The input
// slice is never modified.
func Apply(trips []models.Trip, state models.FilterState) []models.Trip {
	vehicleTypes := toSet(state.VehicleTypes)
	operators := toSet(state.Operators)

	result := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if matches(t, state, vehicleTypes, operators) {
			result = append(result, t)
		}
	}
	return result
}

func matches(t models.Trip, state models.FilterState, vehicleTypes, operators map[string]bool) bool {
	if len(vehicleTypes) > 0 && !vehicleTypes[strings.ToLower(VehicleClass(t))] {
		return false
	}

	if state.Departure != "" && DepartureWindowOf(t) != state.Departure {
		return false
	}

	if len(operators) > 0 && !operators[strings.ToLower(strings.TrimSpace(t.OperatorName))] {
		return false
	}

	if state.Price != nil {
		price := t.MinClassPrice()
		if price < state.Price.Min || price > state.Price.Max {
			return false
		}
	}

	return true
}

// IsActive reports whether state narrows the result set relative to the
// facets derived from it.
func IsActive(state models.FilterState, facets models.Facets) bool {
	if len(state.VehicleTypes) > 0 || state.Departure != "" || len(state.Operators) > 0 {
		return true
	}
	if state.Price != nil {
		return state.Price.Min > facets.PriceBounds.Min || state.Price.Max < facets.PriceBounds.Max
	}
	return false
}

// VehicleClass derives the AC facet from amenities and class-price keys.
func VehicleClass(t models.Trip) string {
	for _, a := range t.Amenities {
		if hasACMarker(a) {
			return ClassAC
		}
	}
	for class := range t.ClassPrices {
		if hasACMarker(class) {
			return ClassAC
		}
	}
	return ClassNonAC
}

func hasACMarker(s string) bool {
	u := strings.ToUpper(s)
	if strings.Contains(u, "AIR CONDITION") || strings.Contains(u, "AIR-CONDITION") {
		return true
	}

	tokens := strings.FieldsFunc(u, func(r rune) bool {
		return (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	})
	for i, tok := range tokens {
		if tok == "NONAC" {
			return false
		}
		if tok == "AC" {
			if i > 0 && tokens[i-1] == "NON" {
				return false
			}
			return true
		}
	}
	return false
}

// WindowForHour maps a departure hour to its window: [6,12) early-morning,
// [12,18) afternoon, [18,24) evening, everything else night.
func WindowForHour(hour int) models.DepartureWindow {
	switch {
	case hour >= 6 && hour < 12:
		return models.WindowEarlyMorning
	case hour >= 12 && hour < 18:
		return models.WindowAfternoon
	case hour >= 18 && hour < 24:
		return models.WindowEvening
	default:
		return models.WindowNight
	}
}

// DepartureWindowOf buckets the trip's departure hour. Unparsable departure
// times fall into the night window.
func DepartureWindowOf(t models.Trip) models.DepartureWindow {
	hour, err := timeparse.Hour(t.DepartureTime)
	if err != nil {
		return models.WindowNight
	}
	return WindowForHour(hour)
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}
