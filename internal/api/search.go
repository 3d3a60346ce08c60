package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/ratelimit"
)

func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	q := url.Values{}
	q.Set("source", req.Source)
	q.Set("destination", req.Destination)
	q.Set("travel_date", req.TravelDate)
	if req.VehicleType != "" {
		q.Set("vehicle_type", req.VehicleType)
	}
	if req.SortBy != "" {
		q.Set("sort_by", req.SortBy)
	}
	if req.SortOrder != "" {
		q.Set("sort_order", req.SortOrder)
	}
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}

	var result models.SearchResult
	if err := c.do(ctx, ratelimit.GroupSearch, http.MethodGet, "/search", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Locations lists stations matching query; an empty query lists all.
func (c *Client) Locations(ctx context.Context, query, vehicleType string) ([]models.Location, error) {
	q := url.Values{}
	if query != "" {
		q.Set("query", query)
	}
	if vehicleType != "" {
		q.Set("vehicle_type", vehicleType)
	}

	var locations []models.Location
	if err := c.do(ctx, ratelimit.GroupLocations, http.MethodGet, "/search/locations", q, nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}
