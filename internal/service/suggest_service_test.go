package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/typeahead"
)

type fakeDirectory struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeDirectory) SearchCustomers(_ context.Context, query string, _ int) ([]domain.Customer, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	return []domain.Customer{{ID: "c1", FullName: "Laura Díaz"}}, nil
}

func TestSuggestService_OnlyNewestKeystrokeFires(t *testing.T) {
	directory := &fakeDirectory{}
	svc := NewSuggestService(directory, 40*time.Millisecond, 10)

	var wg sync.WaitGroup
	results := make([]error, 3)
	for i, query := range []string{"l", "la", "lau"} {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			_, err := svc.Suggest(context.Background(), "session-1", query)
			results[i] = err
		}(i, query)
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	superseded := 0
	for _, err := range results {
		if errors.Is(err, typeahead.ErrSuperseded) {
			superseded++
		}
	}
	if superseded != 2 {
		t.Fatalf("expected 2 superseded queries, got %d", superseded)
	}

	directory.mu.Lock()
	defer directory.mu.Unlock()
	if len(directory.queries) != 1 || directory.queries[0] != "lau" {
		t.Fatalf("only the newest query should reach the backend, got %v", directory.queries)
	}
}

func TestSuggestService_SessionsAreIndependent(t *testing.T) {
	directory := &fakeDirectory{}
	svc := NewSuggestService(directory, 10*time.Millisecond, 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, session := range []string{"session-a", "session-b"} {
		wg.Add(1)
		go func(i int, session string) {
			defer wg.Done()
			_, err := svc.Suggest(context.Background(), session, "laura")
			errs[i] = err
		}(i, session)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("session %d should not be superseded by the other: %v", i, err)
		}
	}

	svc.EndSession("session-a")
	if _, err := svc.Suggest(context.Background(), "session-a", "laura"); err != nil {
		t.Fatalf("a fresh session after EndSession should work: %v", err)
	}
}
