package service

import (
	"context"
	"sync"
	"time"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/typeahead"
)

// CustomerDirectory is the hosted backend lookup the typeahead queries.
type CustomerDirectory interface {
	SearchCustomers(ctx context.Context, query string, limit int) ([]domain.Customer, error)
}

// SuggestService debounces customer typeahead per editing session: keystrokes
// inside the delay window collapse into one backend call, and responses that
// arrive after a newer query are discarded.
type SuggestService struct {
	directory CustomerDirectory
	delay     time.Duration
	limit     int

	mu       sync.Mutex
	sessions map[string]*typeahead.Debouncer[domain.Customer]
}

func NewSuggestService(directory CustomerDirectory, delay time.Duration, limit int) *SuggestService {
	if delay <= 0 {
		delay = typeahead.DefaultDelay
	}
	if limit <= 0 {
		limit = 10
	}
	return &SuggestService{
		directory: directory,
		delay:     delay,
		limit:     limit,
		sessions:  make(map[string]*typeahead.Debouncer[domain.Customer]),
	}
}

// Suggest blocks for the debounce delay and returns the matches for the
// newest query in the session. Superseded calls fail with
// typeahead.ErrSuperseded.
func (s *SuggestService) Suggest(ctx context.Context, sessionID, query string) ([]domain.Customer, error) {
	return s.debouncer(sessionID).Search(ctx, query)
}

// EndSession drops the per-session debouncer once the sale form closes.
func (s *SuggestService) EndSession(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

func (s *SuggestService) debouncer(sessionID string) *typeahead.Debouncer[domain.Customer] {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.sessions[sessionID]
	if !ok {
		d = typeahead.NewDebouncer(func(ctx context.Context, query string) ([]domain.Customer, error) {
			return s.directory.SearchCustomers(ctx, query, s.limit)
		}, s.delay)
		s.sessions[sessionID] = d
	}
	return d
}
