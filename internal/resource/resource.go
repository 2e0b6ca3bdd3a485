// Package resource models a remotely loaded value and the joins used to load many of them.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the lifecycle position of a remote value.
type State int

const (
	// Idle means no load has been asked for yet.
	Idle State = iota
	// Loading means a fetch is in flight.
	Loading
	// Loaded means the fetch returned a value.
	Loaded
	// Failed means the fetch returned an error or panicked.
	Failed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrUnknown stands in when a failure was recorded without a cause.
var ErrUnknown = errors.New("unknown failure")

// Resource is one of Idle, Loading, Loaded(value) or Failed(err).
type Resource[T any] struct {
	state State
	value T
	err   error
}

// NewIdle returns a resource that has not started loading.
func NewIdle[T any]() Resource[T] { return Resource[T]{state: Idle} }

// NewLoading returns a resource whose fetch is in flight.
func NewLoading[T any]() Resource[T] { return Resource[T]{state: Loading} }

// NewLoaded returns a resource holding v.
func NewLoaded[T any](v T) Resource[T] { return Resource[T]{state: Loaded, value: v} }

// NewFailed returns a failed resource. A nil err is recorded as ErrUnknown.
func NewFailed[T any](err error) Resource[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Resource[T]{state: Failed, err: err}
}

// State reports where the resource is in its lifecycle.
func (r Resource[T]) State() State { return r.state }

// Value returns the loaded value; ok is false in every other state.
func (r Resource[T]) Value() (v T, ok bool) {
	if r.state != Loaded {
		return v, false
	}
	return r.value, true
}

// Err returns the failure cause, nil unless Failed.
func (r Resource[T]) Err() error { return r.err }

// Load runs fetch once and captures the result, including a panic, as a Resource.
func Load[T any](ctx context.Context, fetch func(context.Context) (T, error)) (res Resource[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = NewFailed[T](fmt.Errorf("panic during load: %v", p))
		}
	}()
	v, err := fetch(ctx)
	if err != nil {
		return NewFailed[T](err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return NewFailed[T](ctxErr)
	}
	return NewLoaded(v)
}

// Cell holds the current Resource of a view and reports every transition.
type Cell[T any] struct {
	mu       sync.RWMutex
	current  Resource[T]
	onChange func(Resource[T])
}

// NewCell returns an Idle cell. onChange may be nil.
func NewCell[T any](onChange func(Resource[T])) *Cell[T] {
	return &Cell[T]{current: NewIdle[T](), onChange: onChange}
}

// Get returns the current resource.
func (c *Cell[T]) Get() Resource[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set replaces the current resource and notifies the hook.
func (c *Cell[T]) Set(r Resource[T]) {
	c.mu.Lock()
	c.current = r
	hook := c.onChange
	c.mu.Unlock()
	if hook != nil {
		hook(r)
	}
}

// Run moves the cell to Loading, runs fetch, and stores the outcome.
func (c *Cell[T]) Run(ctx context.Context, fetch func(context.Context) (T, error)) Resource[T] {
	c.Set(NewLoading[T]())
	r := Load(ctx, fetch)
	c.Set(r)
	return r
}
