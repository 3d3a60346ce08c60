package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/ticketkini/internal/models"
)

// DeriveFacets inspects the unfiltered result set and builds the filter
// options offered to the user.
func DeriveFacets(trips []models.Trip) models.Facets {
	classCounts := make(map[string]int)
	operatorCounts := make(map[string]int)
	windowCounts := make(map[models.DepartureWindow]int)

	bounds := models.PriceRange{}
	boundsSet := false

	for _, t := range trips {
		classCounts[VehicleClass(t)]++

		if name := strings.TrimSpace(t.OperatorName); name != "" {
			operatorCounts[name]++
		}

		windowCounts[DepartureWindowOf(t)]++

		price := t.MinClassPrice()
		if !boundsSet {
			bounds = models.PriceRange{Min: price, Max: price}
			boundsSet = true
			continue
		}
		if price < bounds.Min {
			bounds.Min = price
		}
		if price > bounds.Max {
			bounds.Max = price
		}
	}

	departure := make([]models.FacetValue, 0, len(models.DepartureWindows))
	for _, w := range models.DepartureWindows {
		departure = append(departure, models.FacetValue{Value: string(w), Count: windowCounts[w]})
	}

	return models.Facets{
		VehicleTypes: sortedValues(classCounts),
		Operators:    sortedValues(operatorCounts),
		Departure:    departure,
		PriceBounds:  bounds,
	}
}

func sortedValues(counts map[string]int) []models.FacetValue {
	values := make([]models.FacetValue, 0, len(counts))
	for v, c := range counts {
		values = append(values, models.FacetValue{Value: v, Count: c})
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].Value < values[j].Value
	})
	return values
}
