package resource

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Outcome is the settled result of one branch of a Gather.
type Outcome[K, T any] struct {
	Key   K
	Value T
	Err   error
}

// Settled holds every branch outcome in the order the keys were given.
type Settled[K, T any] struct {
	Outcomes []Outcome[K, T]
}

// Values returns the successful values in key order.
func (s Settled[K, T]) Values() []T {
	out := make([]T, 0, len(s.Outcomes))
	for _, o := range s.Outcomes {
		if o.Err == nil {
			out = append(out, o.Value)
		}
	}
	return out
}

// Failures returns the failed outcomes in key order.
func (s Settled[K, T]) Failures() []Outcome[K, T] {
	var out []Outcome[K, T]
	for _, o := range s.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Partial reports whether some, but not all, branches failed.
func (s Settled[K, T]) Partial() bool {
	n := len(s.Failures())
	return n > 0 && n < len(s.Outcomes)
}

// AllFailed reports whether there was at least one branch and every branch failed.
func (s Settled[K, T]) AllFailed() bool {
	return len(s.Outcomes) > 0 && len(s.Failures()) == len(s.Outcomes)
}

// Gather runs fetch for every key concurrently and waits for all of them.
// A failing or panicking branch never cancels its siblings; its error is kept
// in its Outcome instead. limit bounds concurrency; 0 means one goroutine per key.
func Gather[K, T any](ctx context.Context, keys []K, limit int, fetch func(context.Context, K) (T, error)) Settled[K, T] {
	outcomes := make([]Outcome[K, T], len(keys))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, key := range keys {
		g.Go(func() error {
			outcomes[i] = settle(ctx, key, fetch)
			return nil
		})
	}
	_ = g.Wait()

	return Settled[K, T]{Outcomes: outcomes}
}

func settle[K, T any](ctx context.Context, key K, fetch func(context.Context, K) (T, error)) (o Outcome[K, T]) {
	o.Key = key
	defer func() {
		if p := recover(); p != nil {
			o.Err = fmt.Errorf("panic in branch %v: %v", key, p)
		}
	}()
	if err := ctx.Err(); err != nil {
		o.Err = err
		return o
	}
	o.Value, o.Err = fetch(ctx, key)
	return o
}
