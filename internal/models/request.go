package models

import (
	"strings"
	"time"
)

const DefaultSearchLimit = 200

type SearchRequest struct {
	Source      string `json:"source" query:"source"`
	Destination string `json:"destination" query:"destination"`
	TravelDate  string `json:"travel_date" query:"date"`
	VehicleType string `json:"vehicle_type,omitempty" query:"vehicle_type"`
	SortBy      string `json:"sort_by,omitempty"`
	SortOrder   string `json:"sort_order,omitempty"`
	Page        int    `json:"page,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

func (r *SearchRequest) Validate() error {
	r.Source = strings.TrimSpace(r.Source)
	r.Destination = strings.TrimSpace(r.Destination)
	r.TravelDate = strings.TrimSpace(r.TravelDate)

	if r.Source == "" {
		return ErrMissingSource
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.TravelDate == "" {
		return ErrMissingTravelDate
	}
	if _, err := time.Parse("2006-01-02", r.TravelDate); err != nil {
		return ErrInvalidTravelDate
	}
	if strings.EqualFold(r.Source, r.Destination) {
		return ErrSameEndpoints
	}
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = DefaultSearchLimit
	}
	if r.SortBy == "" {
		r.SortBy = "departure_time"
	}
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	return nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" {
		return ErrMissingEmail
	}
	if c.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingSource      ValidationError = "source is required"
	ErrMissingDestination ValidationError = "destination is required"
	ErrMissingTravelDate  ValidationError = "travel date is required"
	ErrInvalidTravelDate  ValidationError = "travel date must be YYYY-MM-DD"
	ErrSameEndpoints      ValidationError = "source and destination must differ"
	ErrMissingEmail       ValidationError = "email is required"
	ErrMissingPassword    ValidationError = "password is required"
)
