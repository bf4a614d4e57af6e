package view

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/couchcryptid/user-locations/internal/domain"
	"github.com/couchcryptid/user-locations/internal/observability"
)

// State is the single view state. Records holds the full list in its current
// order; the query is applied only when a page is derived.
type State struct {
	Batch   domain.Batch
	Records []domain.UserRecord
	Sort    domain.SortConfig
	Query   string
}

// InitialState is the state before any load: no records, unsorted, empty query.
func InitialState() State {
	return State{Sort: domain.InitialSortConfig()}
}

// Store owns the view state. Every transition builds a new State and swaps it in whole.
type Store struct {
	mu      sync.RWMutex
	state   State
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewStore creates a store in the initial state.
func NewStore(metrics *observability.Metrics, logger *slog.Logger) *Store {
	return &Store{
		state:   InitialState(),
		metrics: metrics,
		logger:  logger,
	}
}

// LoadBatch replaces the records with a freshly loaded batch in fetch order.
// Sort and query are left as they are.
func (s *Store) LoadBatch(_ context.Context, batch domain.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Batch = domain.Batch{ID: batch.ID, FetchedAt: batch.FetchedAt}
	next.Records = batch.Records
	s.state = next

	s.logger.Info("view loaded", "batch_id", batch.ID, "records", len(batch.Records))
	return nil
}

// Sort applies a header selection: the sort config advances and the full
// record list is reordered by it.
func (s *Store) Sort(field domain.Field) (Page, error) {
	if _, err := domain.ParseField(string(field)); err != nil {
		return Page{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Sort = domain.NextSortConfig(s.state.Sort, field)
	next.Records = domain.Sort(s.state.Records, next.Sort)
	s.state = next

	s.metrics.ViewActions.WithLabelValues("sort").Inc()
	s.logger.Debug("sort applied", "field", field, "direction", next.Sort.Direction)
	return Derive(next), nil
}

// Search replaces the query. The stored query is always lowercase.
func (s *Store) Search(query string) Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.Query = strings.ToLower(query)
	s.state = next

	s.metrics.ViewActions.WithLabelValues("search").Inc()
	return Derive(next)
}

// Snapshot derives the page for the current state.
func (s *Store) Snapshot() Page {
	return Derive(s.State())
}

// State returns the current state value.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
