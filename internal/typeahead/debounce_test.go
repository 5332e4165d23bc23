package typeahead

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSearchFiresOnlyFinalQuery(t *testing.T) {
	var mu sync.Mutex
	var fired []string
	d := NewDebouncer(func(ctx context.Context, q string) ([]string, error) {
		mu.Lock()
		fired = append(fired, q)
		mu.Unlock()
		return []string{"result:" + q}, nil
	}, 20*time.Millisecond)

	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make([]error, 3)
	queries := []string{"c", "ca", "can"}
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			_, errs[i] = d.Search(ctx, q)
		}(i, q)
		time.Sleep(5 * time.Millisecond) // keystrokes faster than the delay
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 || fired[0] != "can" {
		t.Fatalf("backend saw queries %v, want only the final one", fired)
	}
	superseded := 0
	for _, err := range errs {
		if errors.Is(err, ErrSuperseded) {
			superseded++
		}
	}
	if superseded != 2 {
		t.Fatalf("%d callers superseded, want 2 (errs=%v)", superseded, errs)
	}
}

func TestSearchDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	d := NewDebouncer(func(ctx context.Context, q string) ([]string, error) {
		if q == "slow" {
			<-release
		}
		return []string{q}, nil
	}, time.Millisecond)

	ctx := context.Background()

	slowErr := make(chan error, 1)
	go func() {
		_, err := d.Search(ctx, "slow")
		slowErr <- err
	}()

	// Let the slow query pass its debounce window and enter the backend call.
	time.Sleep(20 * time.Millisecond)

	results, err := d.Search(ctx, "fresh")
	if err != nil {
		t.Fatalf("fresh query failed: %v", err)
	}
	if len(results) != 1 || results[0] != "fresh" {
		t.Fatalf("fresh query results = %v", results)
	}

	close(release)
	if err := <-slowErr; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("slow stale query err = %v, want ErrSuperseded", err)
	}
}

func TestSearchHonorsContext(t *testing.T) {
	d := NewDebouncer(func(ctx context.Context, q string) ([]string, error) {
		return nil, nil
	}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	if _, err := d.Search(ctx, "q"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
