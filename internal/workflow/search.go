package workflow

import (
	"context"
	"sync"
	"time"

	"repairshop-orders/internal/domain"
)

// DefaultSearchDebounce is the delay applied to customer search input.
const DefaultSearchDebounce = 300 * time.Millisecond

// CustomerDirectory is the customer lookup/registration collaborator.
type CustomerDirectory interface {
	Search(ctx context.Context, term string) ([]domain.Customer, error)
	Create(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error)
}

type CreateCustomerInput struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email,omitempty"`
	PreferredLanguage string `json:"preferredLanguage,omitempty"`
}

// Searcher debounces customer search input. Each new term replaces the
// pending timer, so only the latest term in a burst of keystrokes reaches the
// directory.
type Searcher struct {
	dir   CustomerDirectory
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewSearcher(dir CustomerDirectory, delay time.Duration) *Searcher {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Searcher{dir: dir, delay: delay}
}

// Query is the entry point for interactive callers feeding keystrokes: it
// schedules a debounced search and delivers the result to fn. A call made
// before the previous delay elapses cancels the pending search. The caller's
// scope usually ends before the timer fires, so the search runs on a context
// detached from the caller's cancellation; Stop cancels a pending search.
func (s *Searcher) Query(ctx context.Context, term string, fn func([]domain.Customer, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		fn(s.dir.Search(ctx, term))
	})
}

// SearchNow bypasses the debounce, for callers whose input is already
// settled, such as a server handling one search request per query.
func (s *Searcher) SearchNow(ctx context.Context, term string) ([]domain.Customer, error) {
	return s.dir.Search(ctx, term)
}

// Stop cancels any pending search.
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
