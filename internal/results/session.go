package results

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dharmasatrya/ticketkini/internal/filter"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/pagination"
	"github.com/dharmasatrya/ticketkini/internal/ranking"
)

// ErrRenderBusy is returned when a render is requested while another one
// is still running. The request is dropped, not queued.
var ErrRenderBusy = errors.New("results: render already in progress")

// Renderer receives a complete view and replaces whatever it showed before.
type Renderer interface {
	Render(View) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View) error

func (f RendererFunc) Render(v View) error { return f(v) }

type View struct {
	Trips        []models.Trip      `json:"trips"`
	Page         int                `json:"page"`
	PageSize     int                `json:"page_size"`
	TotalPages   int                `json:"total_pages"`
	HasNext      bool               `json:"has_next"`
	HasPrevious  bool               `json:"has_previous"`
	Total        int                `json:"total"`
	Matched      int                `json:"matched"`
	Filtered     bool               `json:"filtered"`
	CountLabel   string             `json:"count_label"`
	ShowClearAll bool               `json:"show_clear_all"`
	Facets       models.Facets      `json:"facets"`
	Filters      models.FilterState `json:"filters"`
	Sort         ranking.SortKey    `json:"sort"`
}

// Session is the state behind one results page: the deduplicated trips,
// the derived facets, and the user's current filter, sort and page.
type Session struct {
	renderer Renderer
	logger   *slog.Logger

	mu       sync.Mutex
	all      []models.Trip
	filtered []models.Trip
	facets   models.Facets
	filters  models.FilterState
	sortKey  ranking.SortKey
	page     int

	rendering atomic.Bool
}

func NewSession(renderer Renderer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		renderer: renderer,
		logger:   logger,
		sortKey:  ranking.DefaultSortKey,
		page:     1,
	}
}

// Load replaces the result set. Filters are cleared because the facets
// they referred to no longer exist.
func (s *Session) Load(trips []models.Trip) error {
	s.mu.Lock()
	s.load(trips)
	s.recompute()
	s.mu.Unlock()
	return s.Render()
}

// Build computes a single view for trips with the given filters, sort and
// page without going through a renderer.
func Build(trips []models.Trip, state models.FilterState, key ranking.SortKey, page int, logger *slog.Logger) View {
	s := NewSession(nil, logger)
	s.mu.Lock()
	s.load(trips)
	s.filters = state
	s.sortKey = ranking.ParseSortKey(string(key))
	s.page = max(page, 1)
	s.recompute()
	s.mu.Unlock()
	return s.View()
}

// load must be called with mu held.
func (s *Session) load(trips []models.Trip) {
	before := len(trips)
	s.all = filter.Dedup(trips)
	s.facets = filter.DeriveFacets(s.all)
	s.filters = models.FilterState{}
	s.page = 1

	if dropped := before - len(s.all); dropped > 0 {
		s.logger.Debug("dropped duplicate trips", "duplicates", dropped, "unique", len(s.all))
	}
}

func (s *Session) SetFilters(state models.FilterState) error {
	s.mu.Lock()
	s.filters = state
	s.page = 1
	s.recompute()
	s.mu.Unlock()
	return s.Render()
}

func (s *Session) ClearFilters() error {
	return s.SetFilters(models.FilterState{})
}

func (s *Session) SetSort(key ranking.SortKey) error {
	s.mu.Lock()
	s.sortKey = ranking.ParseSortKey(string(key))
	s.page = 1
	s.recompute()
	s.mu.Unlock()
	return s.Render()
}

// SetPage moves to another page and keeps the filters.
func (s *Session) SetPage(page int) error {
	s.mu.Lock()
	if page < 1 {
		page = 1
	}
	s.page = page
	s.mu.Unlock()
	return s.Render()
}

// Render pushes the current view to the renderer unless a render is
// already running.
func (s *Session) Render() error {
	if !s.rendering.CompareAndSwap(false, true) {
		s.logger.Debug("render dropped, previous render still running")
		return ErrRenderBusy
	}
	defer s.rendering.Store(false)

	if s.renderer == nil {
		return nil
	}
	if err := s.renderer.Render(s.View()); err != nil {
		return fmt.Errorf("render results: %w", err)
	}
	return nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := pagination.Paginate(s.filtered, s.page, pagination.PageSize)
	active := filter.IsActive(s.filters, s.facets)

	return View{
		Trips:        page.Items,
		Page:         page.Number,
		PageSize:     page.Size,
		TotalPages:   page.TotalPages,
		HasNext:      page.HasNext,
		HasPrevious:  page.HasPrev,
		Total:        len(s.all),
		Matched:      len(s.filtered),
		Filtered:     active,
		CountLabel:   CountLabel(len(s.filtered), len(s.all), active),
		ShowClearAll: active,
		Facets:       s.facets,
		Filters:      s.filters,
		Sort:         s.sortKey,
	}
}

// recompute must be called with mu held.
func (s *Session) recompute() {
	s.filtered = ranking.Sort(filter.Apply(s.all, s.filters), s.sortKey)
}

func CountLabel(matched, total int, filtered bool) string {
	if filtered {
		return fmt.Sprintf("%d of %d results", matched, total)
	}
	return fmt.Sprintf("%d results available", total)
}
