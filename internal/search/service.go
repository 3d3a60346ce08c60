package search

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/dharmasatrya/ticketkini/internal/cache"
	"github.com/dharmasatrya/ticketkini/internal/models"
)

// ErrSearchInProgress is returned when a search starts while another one
// on the same service is still running. The second search is dropped.
var ErrSearchInProgress = errors.New("search: another search is in progress")

// Searcher is the remote search endpoint.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error)
}

type Service struct {
	api    Searcher
	cache  cache.Cache
	logger *slog.Logger

	searching atomic.Bool
}

func NewService(api Searcher, c cache.Cache, logger *slog.Logger) *Service {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, cache: c, logger: logger}
}

// Search returns the raw trips for a route and date. Filtering, sorting and
// paging happen on the client, so the request always asks for one large
// first page.
func (s *Service) Search(ctx context.Context, req models.SearchRequest) ([]models.Trip, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Page = 1
	if req.Limit < models.DefaultSearchLimit {
		req.Limit = models.DefaultSearchLimit
	}

	if !s.searching.CompareAndSwap(false, true) {
		return nil, ErrSearchInProgress
	}
	defer s.searching.Store(false)

	if trips, ok := s.cache.Get(ctx, req); ok {
		s.logger.Debug("search cache hit", "source", req.Source, "destination", req.Destination, "date", req.TravelDate)
		return trips, nil
	}

	res, err := s.api.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, req, res.Trips); err != nil {
		s.logger.Warn("failed to cache search results", "error", err)
	}
	s.logger.Info("search completed",
		"source", req.Source,
		"destination", req.Destination,
		"date", req.TravelDate,
		"trips", len(res.Trips),
	)
	return res.Trips, nil
}

// Searching reports whether a search is in flight.
func (s *Service) Searching() bool {
	return s.searching.Load()
}
