// Package view holds per-page state: one fetched collection, its load state,
// and the in-flight guard for mutations.
package view

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type State int

const (
	Loading State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

var (
	// ErrBusy is returned when a mutation is already in flight on the page.
	ErrBusy = errors.New("view: another change is still in progress")
	// ErrClosed is returned by operations on a page that was closed.
	ErrClosed = errors.New("view: page closed")
)

// Snapshot is an immutable copy of a page's state.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   error
}

// Page owns one fetched value of type T. A failed fetch leaves the zero T in
// Data together with the error.
type Page[T any] struct {
	name  string
	fetch func(ctx context.Context) (T, error)
	log   *zap.Logger

	mu       sync.Mutex
	state    State
	data     T
	err      error
	gen      uint64
	inFlight bool
	closed   bool
}

func NewPage[T any](name string, fetch func(ctx context.Context) (T, error), log *zap.Logger) *Page[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Page[T]{name: name, fetch: fetch, log: log.With(zap.String("page", name))}
}

// Snapshot returns the current state.
func (p *Page[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot[T]{State: p.state, Data: p.data, Err: p.err}
}

// Refetch enters Loading and fetches the whole value again. Only the most
// recent refetch may settle the page; older responses and responses that
// arrive after Close are dropped.
func (p *Page[T]) Refetch(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.gen++
	gen := p.gen
	p.state = Loading
	p.mu.Unlock()

	data, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen != p.gen {
		p.log.Debug("dropping stale response", zap.Uint64("generation", gen))
		return err
	}
	p.state = Ready
	if err != nil {
		var zero T
		p.data = zero
		p.err = err
		p.log.Error("fetch failed", zap.Error(err))
		return err
	}
	p.data = data
	p.err = nil
	return nil
}

// Mutate runs fn while holding the in-flight guard. On success the page is
// refetched; on failure the current snapshot is left untouched.
func (p *Page[T]) Mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.inFlight {
		p.mu.Unlock()
		return ErrBusy
	}
	p.inFlight = true
	p.mu.Unlock()

	err := fn(ctx)

	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()

	if err != nil {
		p.log.Error("change failed", zap.Error(err))
		return err
	}
	// The mutation itself succeeded; a failing refetch is recorded on the page.
	_ = p.Refetch(ctx)
	return nil
}

// InFlight reports whether a mutation is pending, i.e. whether the control
// that triggered it should be disabled.
func (p *Page[T]) InFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Close marks the page unmounted.
func (p *Page[T]) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}
