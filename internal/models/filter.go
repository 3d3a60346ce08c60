package models

// DepartureWindow buckets a departure hour into one of four fixed windows.
type DepartureWindow string

const (
	WindowEarlyMorning DepartureWindow = "early-morning"
	WindowAfternoon    DepartureWindow = "afternoon"
	WindowEvening      DepartureWindow = "evening"
	WindowNight        DepartureWindow = "night"
)

var DepartureWindows = []DepartureWindow{
	WindowEarlyMorning,
	WindowAfternoon,
	WindowEvening,
	WindowNight,
}

func (w DepartureWindow) Valid() bool {
	switch w {
	case WindowEarlyMorning, WindowAfternoon, WindowEvening, WindowNight:
		return true
	}
	return false
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterState is what the user picked on the results page. Empty slices
// and a nil price range mean "no constraint".
type FilterState struct {
	VehicleTypes []string        `json:"vehicle_types,omitempty"`
	Departure    DepartureWindow `json:"departure,omitempty"`
	Operators    []string        `json:"operators,omitempty"`
	Price        *PriceRange     `json:"price,omitempty"`
}

type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets are derived from the unfiltered result set.
type Facets struct {
	VehicleTypes []FacetValue `json:"vehicle_types"`
	Operators    []FacetValue `json:"operators"`
	Departure    []FacetValue `json:"departure"`
	PriceBounds  PriceRange   `json:"price_bounds"`
}
