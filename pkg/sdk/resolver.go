package sdk

import (
	"context"
	"sync"
)

// lazy tracks one expensive shared value through the states
// unresolved → resolving → resolved|failed.
//
// The first demand triggers the underlying fetch; every concurrent demand
// attaches to that one in-flight resolution, so at most one fetch ever happens
// for the lifetime of the owning factory no matter how many consumers ask.
// Both outcomes are cached permanently: a failed first fetch is replayed to
// every later demand rather than silently retried.
type lazy[T any] struct {
	fetch func(ctx context.Context) (T, error)

	mu      sync.Mutex
	started bool
	done    chan struct{}
	value   T
	err     error
}

func newLazy[T any](fetch func(ctx context.Context) (T, error)) *lazy[T] {
	return &lazy[T]{
		fetch: fetch,
		done:  make(chan struct{}),
	}
}

// newResolvedLazy short-circuits straight to the resolved state. Used when
// the value was supplied explicitly at factory construction; no fetch is ever
// issued.
func newResolvedLazy[T any](value T) *lazy[T] {
	done := make(chan struct{})
	close(done)
	return &lazy[T]{
		started: true,
		done:    done,
		value:   value,
	}
}

// get returns the resolved value, starting the fetch on first demand.
//
// Cancelling ctx abandons this caller's wait only; the fetch itself runs on a
// context detached from any single consumer, so one impatient caller can never
// cancel a resolution other consumers still depend on.
func (l *lazy[T]) get(ctx context.Context) (T, error) {
	l.mu.Lock()
	if !l.started {
		l.started = true
		go l.run(context.WithoutCancel(ctx))
	}
	done := l.done
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-done:
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.err
}

func (l *lazy[T]) run(ctx context.Context) {
	value, err := l.fetch(ctx)

	l.mu.Lock()
	l.value, l.err = value, err
	l.mu.Unlock()
	close(l.done)
}
