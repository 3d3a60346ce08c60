package handler

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/ticketkini/internal/cache"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/ranking"
	"github.com/dharmasatrya/ticketkini/internal/results"
	"github.com/dharmasatrya/ticketkini/internal/search"
	"github.com/dharmasatrya/ticketkini/internal/ui"
)

// SearchAPI is the remote search surface.
type SearchAPI interface {
	search.Searcher
	Locations(ctx context.Context, query, vehicleType string) ([]models.Location, error)
}

type SearchHandler struct {
	api    SearchAPI
	cache  cache.Cache
	logger *slog.Logger
}

type SearchPage struct {
	Request     models.SearchRequest `json:"request"`
	Results     results.View         `json:"results"`
	Cards       []ui.TripCard        `json:"cards"`
	SortOptions []ranking.SortKey    `json:"sort_options"`
}

func NewSearchHandler(api SearchAPI, c cache.Cache, logger *slog.Logger) *SearchHandler {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{api: api, cache: c, logger: logger}
}

// Search runs the whole results pipeline for one page view. Filters, sort
// and page come from the query string:
//
//	class=AC&class=Non-AC  departure=evening  operator=X&operator=Y
//	min_price=500  max_price=1500  sort=price_low_high  page=2
func (h *SearchHandler) Search(c echo.Context) error {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse search parameters: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	state, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	page := 1
	if p := c.QueryParam("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return badRequest(c, "page must be a number")
		}
		page = n
	}

	// One service per page view: its in-flight flag guards this page's
	// searches, not every visitor's.
	svc := search.NewService(h.api, h.cache, h.logger)
	trips, err := svc.Search(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	view := results.Build(trips, state, ranking.SortKey(c.QueryParam("sort")), page, h.logger)

	return c.JSON(http.StatusOK, SearchPage{
		Request:     req,
		Results:     view,
		Cards:       ui.TripCards(view.Trips),
		SortOptions: ranking.SortKeys,
	})
}

func (h *SearchHandler) Locations(c echo.Context) error {
	locations, err := h.api.Locations(c.Request().Context(), c.QueryParam("query"), c.QueryParam("vehicle_type"))
	if err != nil {
		return writeError(c, err)
	}
	if locations == nil {
		locations = []models.Location{}
	}
	return c.JSON(http.StatusOK, locations)
}

func parseFilters(c echo.Context) (models.FilterState, error) {
	var state models.FilterState
	q := c.QueryParams()

	state.VehicleTypes = splitValues(q["class"])
	state.Operators = splitValues(q["operator"])

	if d := c.QueryParam("departure"); d != "" {
		w := models.DepartureWindow(strings.ToLower(d))
		if !w.Valid() {
			return state, errInvalid("departure must be one of early-morning, afternoon, evening, night")
		}
		state.Departure = w
	}

	minStr, maxStr := c.QueryParam("min_price"), c.QueryParam("max_price")
	if minStr != "" || maxStr != "" {
		r := &models.PriceRange{}
		var err error
		if minStr != "" {
			if r.Min, err = strconv.ParseFloat(minStr, 64); err != nil {
				return state, errInvalid("min_price must be a number")
			}
		}
		if maxStr != "" {
			if r.Max, err = strconv.ParseFloat(maxStr, 64); err != nil {
				return state, errInvalid("max_price must be a number")
			}
		} else {
			r.Max = math.MaxFloat64
		}
		state.Price = r
	}
	return state, nil
}

// splitValues accepts both repeated parameters and comma lists.
func splitValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

type errInvalid string

func (e errInvalid) Error() string { return string(e) }

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
