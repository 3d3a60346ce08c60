package filter

import "github.com/dharmasatrya/ticketkini/internal/models"

// DedupKey fingerprints a trip. The search API can return the same
// departure more than once and has no stable schedule id to key on.
type DedupKey struct {
	VehicleID       int64
	SourceName      string
	DestinationName string
	DepartureTime   string
	ArrivalTime     string
}

func KeyOf(t models.Trip) DedupKey {
	return DedupKey{
		VehicleID:       t.VehicleID,
		SourceName:      t.SourceName,
		DestinationName: t.DestinationName,
		DepartureTime:   t.DepartureTime,
		ArrivalTime:     t.ArrivalTime,
	}
}

// Dedup keeps the first trip for every key, preserving order.
func Dedup(trips []models.Trip) []models.Trip {
	seen := make(map[DedupKey]bool, len(trips))
	result := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		k := KeyOf(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, t)
	}
	return result
}
