// Package listresource holds the fetched list behind a view and drives its
// loading, error, empty and populated states.
package listresource

import (
	"context"
	"errors"
	"sync"
)

// DefaultErrorMessage is shown when a fetch fails.
const DefaultErrorMessage = "Failed to load news articles"

var (
	// ErrClosed is returned by Load after Close.
	ErrClosed = errors.New("list controller closed")
	// ErrSuperseded is returned by a Load whose result was dropped because a
	// newer Load started or the controller was closed while it ran.
	ErrSuperseded = errors.New("list load superseded")
)

// State is the rendering state of a list.
type State int

const (
	Idle State = iota
	Loading
	Error
	Empty
	Populated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}

// FetchFunc loads the full list.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Snapshot is an immutable view of a controller.
type Snapshot[T any] struct {
	State State
	Items []T
	// Err is the user-facing message in the Error state.
	Err string
	// CanRetry is true only in the Error state.
	CanRetry bool
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithOnChange registers fn to receive a snapshot after every transition.
// fn runs outside the controller lock.
func WithOnChange[T any](fn func(Snapshot[T])) Option[T] {
	return func(c *Controller[T]) { c.onChange = fn }
}

// WithErrorMessage overrides DefaultErrorMessage.
func WithErrorMessage[T any](msg string) Option[T] {
	return func(c *Controller[T]) { c.errMessage = msg }
}

// Controller owns one list. Every fetch runs under a context derived from
// the controller lifetime, and results of superseded or cancelled fetches
// are never applied.
type Controller[T any] struct {
	fetch      FetchFunc[T]
	errMessage string
	onChange   func(Snapshot[T])

	lifetime context.Context
	stop     context.CancelFunc

	mu       sync.Mutex
	state    State
	items    []T
	errText  string
	gen      uint64
	inflight context.CancelFunc
	closed   bool
}

// New creates an idle Controller.
func New[T any](fetch FetchFunc[T], opts ...Option[T]) *Controller[T] {
	lifetime, stop := context.WithCancel(context.Background())
	c := &Controller[T]{
		fetch:      fetch,
		errMessage: DefaultErrorMessage,
		lifetime:   lifetime,
		stop:       stop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load enters Loading and issues exactly one fetch. It blocks until the
// fetch returns and reports the fetch error, if any.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.gen++
	gen := c.gen
	if c.inflight != nil {
		c.inflight()
	}
	reqCtx, cancel := context.WithCancel(c.lifetime)
	unlink := context.AfterFunc(ctx, cancel)
	c.inflight = cancel
	c.state = Loading
	c.errText = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	items, err := c.fetch(reqCtx)
	unlink()

	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		cancel()
		return ErrSuperseded
	}
	c.inflight = nil
	cancel()

	if err != nil {
		c.state = Error
		c.items = nil
		c.errText = c.errMessage
	} else {
		c.items = append([]T(nil), items...)
		if len(c.items) == 0 {
			c.state = Empty
		} else {
			c.state = Populated
		}
	}
	snap = c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	return err
}

// Retry is the explicit "try again" action.
func (c *Controller[T]) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// Close cancels any in-flight fetch. Later results are discarded and
// further loads fail with ErrClosed.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.inflight = nil
	c.stop()
}

// Snapshot returns the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	s := Snapshot[T]{
		State:    c.state,
		Err:      c.errText,
		CanRetry: c.state == Error,
	}
	if c.state == Populated {
		s.Items = append([]T(nil), c.items...)
	}
	return s
}

func (c *Controller[T]) notify(s Snapshot[T]) {
	if c.onChange != nil {
		c.onChange(s)
	}
}
