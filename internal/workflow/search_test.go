package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"repairshop-orders/internal/domain"
)

type stubDirectory struct {
	mu      sync.Mutex
	terms   []string
	results []domain.Customer
	created *domain.Customer
}

func (s *stubDirectory) Search(_ context.Context, term string) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = append(s.terms, term)
	return s.results, nil
}

func (s *stubDirectory) Create(_ context.Context, _ CreateCustomerInput) (*domain.Customer, error) {
	return s.created, nil
}

func (s *stubDirectory) searchedTerms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.terms))
	copy(out, s.terms)
	return out
}

func TestSearcherDebouncesBursts(t *testing.T) {
	dir := &stubDirectory{results: []domain.Customer{{ID: "c1", Name: "Ada"}}}
	s := NewSearcher(dir, 20*time.Millisecond)

	done := make(chan []domain.Customer, 1)
	ctx := context.Background()
	// A burst of keystrokes; only the last term should hit the directory.
	s.Query(ctx, "a", func([]domain.Customer, error) { t.Errorf("query for 'a' should have been replaced") })
	s.Query(ctx, "ad", func([]domain.Customer, error) { t.Errorf("query for 'ad' should have been replaced") })
	s.Query(ctx, "ada", func(res []domain.Customer, err error) {
		if err != nil {
			t.Errorf("search: %v", err)
		}
		done <- res
	})

	select {
	case res := <-done:
		if len(res) != 1 || res[0].ID != "c1" {
			t.Fatalf("unexpected results: %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatalf("debounced search never fired")
	}

	if terms := dir.searchedTerms(); len(terms) != 1 || terms[0] != "ada" {
		t.Fatalf("expected single search for 'ada', got %v", terms)
	}
}

func TestSearcherStopCancelsPending(t *testing.T) {
	dir := &stubDirectory{}
	s := NewSearcher(dir, 10*time.Millisecond)

	s.Query(context.Background(), "ada", func([]domain.Customer, error) {
		t.Errorf("stopped query should not fire")
	})
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	if terms := dir.searchedTerms(); len(terms) != 0 {
		t.Fatalf("expected no searches, got %v", terms)
	}
}

type ctxCheckDirectory struct {
	stubDirectory
	ctxErr chan error
}

func (d *ctxCheckDirectory) Search(ctx context.Context, _ string) ([]domain.Customer, error) {
	d.ctxErr <- ctx.Err()
	return nil, nil
}

func TestQueryOutlivesCallerContext(t *testing.T) {
	dir := &ctxCheckDirectory{ctxErr: make(chan error, 1)}
	s := NewSearcher(dir, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.Query(ctx, "ada", func([]domain.Customer, error) { close(done) })
	// The request scope ends before the debounce elapses.
	cancel()

	select {
	case err := <-dir.ctxErr:
		if err != nil {
			t.Fatalf("search context should be detached from the caller, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("debounced search never fired")
	}
	<-done
}

func TestSearchNowSkipsDebounce(t *testing.T) {
	dir := &stubDirectory{results: []domain.Customer{{ID: "c1"}}}
	s := NewSearcher(dir, time.Hour)

	res, err := s.SearchNow(context.Background(), "ada")
	if err != nil {
		t.Fatalf("search now: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("unexpected results: %+v", res)
	}
}
