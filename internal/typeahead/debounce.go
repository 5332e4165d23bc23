// Package typeahead coalesces search-as-you-type queries. A fixed idle delay
// resets on every new query so only the final input state reaches the backend,
// and every query carries a monotonically increasing sequence number so a slow
// response for a stale query can never overtake a newer one.
package typeahead

import (
	"context"
	"errors"
	"sync"
	"time"
)

const DefaultDelay = 500 * time.Millisecond

// ErrSuperseded is returned to a waiter whose query was replaced by a newer
// one before it produced a result.
var ErrSuperseded = errors.New("query superseded by newer input")

type SearchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// Debouncer serializes queries from one input box. Safe for concurrent use.
type Debouncer[T any] struct {
	search SearchFunc[T]
	delay  time.Duration

	mu      sync.Mutex
	seq     uint64
	current chan struct{} // closed when the pending query is superseded
}

func NewDebouncer[T any](search SearchFunc[T], delay time.Duration) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{search: search, delay: delay}
}

// Search registers a new query and blocks until the idle delay elapses and
// the backend answers, or until a newer query supersedes this one. Only the
// latest query's result is ever returned; superseded callers get
// ErrSuperseded, including when the stale response arrives after a newer
// query already started.
func (d *Debouncer[T]) Search(ctx context.Context, query string) ([]T, error) {
	d.mu.Lock()
	d.seq++
	mine := d.seq
	if d.current != nil {
		close(d.current)
	}
	superseded := make(chan struct{})
	d.current = superseded
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		d.release(mine)
		return nil, ctx.Err()
	case <-superseded:
		return nil, ErrSuperseded
	case <-timer.C:
	}

	results, err := d.search(ctx, query)

	d.mu.Lock()
	latest := d.seq == mine
	d.mu.Unlock()
	if !latest {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// release clears the pending marker when the owning query leaves early.
func (d *Debouncer[T]) release(mine uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seq == mine {
		d.current = nil
	}
}
