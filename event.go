package asyncx

import (
	"github.com/saylorsolutions/asyncx/assert"
)

// ProfilingKeys identifies one blocking interval to an external profiler.
// It is produced by an [OnBlockStartFn] and handed back, unchanged, to the matching [OnBlockEndFn].
//
// For now it carries a single ID; it is a struct so other profiler correlation fields can be added without breaking the hook signatures.
type ProfilingKeys struct {
	TraceContextID uint64
}

// OnBlockStartFn is called by [Event.Wait] immediately before it blocks the calling goroutine.
type OnBlockStartFn = func() ProfilingKeys

// OnBlockEndFn is called by [Event.Wait] immediately after it resumes, with the keys returned by the matching [OnBlockStartFn].
type OnBlockEndFn = func(ProfilingKeys)

func noopBlockStart() ProfilingKeys {
	return ProfilingKeys{}
}

func noopBlockEnd(ProfilingKeys) {}

// Option customizes an [Event] at construction time.
// Options are not generic over T, so the same hook pair can be reused across events of different types.
type Option func(*eventConfig)

type eventConfig struct {
	onBlockStart OnBlockStartFn
	onBlockEnd   OnBlockEndFn
}

func applyOptions(opts []Option) eventConfig {
	cfg := eventConfig{
		onBlockStart: noopBlockStart,
		onBlockEnd:   noopBlockEnd,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithBlockStart installs fn as the hook called before [Event.Wait] blocks.
// Defaults to a hook returning zero [ProfilingKeys].
func WithBlockStart(fn OnBlockStartFn) Option {
	return func(cfg *eventConfig) {
		if fn != nil {
			cfg.onBlockStart = fn
		}
	}
}

// WithBlockEnd installs fn as the hook called after [Event.Wait] resumes.
// Defaults to a no-op.
func WithBlockEnd(fn OnBlockEndFn) Option {
	return func(cfg *eventConfig) {
		if fn != nil {
			cfg.onBlockEnd = fn
		}
	}
}

// Event is a handle to the eventual result of asynchronous work, reporting a single value of type T when the work completes.
// T is frequently an error- or status-carrying type; this package attaches no meaning to it.
//
// Copying an Event is cheap and shares the underlying [Cell]: hand copies to as many consumers as needed, and every copy observes the one value written by the producer.
// The zero value is an unbound placeholder ([Event.Valid] reports false) and must be replaced by a constructed handle before use.
type Event[T any] struct {
	cell         *Cell[T]
	onBlockStart OnBlockStartFn
	onBlockEnd   OnBlockEndFn
	ctx          *Context
}

// Ready creates an [Event] that is already concrete, holding val.
// Blocking is never needed on such a handle, so it carries no [Context] and its hooks never fire.
//
// Typically used to return eagerly-known results, such as a validation failure raised before any work is enqueued.
func Ready[T any](val T) Event[T] {
	return Event[T]{
		cell:         NewCellOf(val),
		onBlockStart: noopBlockStart,
		onBlockEnd:   noopBlockEnd,
	}
}

// New creates an [Event] over an existing cell, for producers that already manage their own [Cell] references.
// ctx is used only to await the cell and may be nil if the cell is already concrete.
func New[T any](ctx *Context, cell *Cell[T], opts ...Option) Event[T] {
	assert.NotNil("event cell", cell)
	cfg := applyOptions(opts)
	return Event[T]{
		cell:         cell,
		onBlockStart: cfg.onBlockStart,
		onBlockEnd:   cfg.onBlockEnd,
		ctx:          ctx,
	}
}

// FromPromise creates an [Event] bound to the cell behind p, for producers that hand out handles before the work runs.
// The producer keeps p and calls [Promise.Set] when the work completes; every copy of the returned handle observes that value.
func FromPromise[T any](ctx *Context, p Promise[T], opts ...Option) Event[T] {
	assert.True("promise is bound to a cell", p.Valid())
	return New(ctx, p.cell, opts...)
}

// Valid reports whether the handle is bound to a cell.
// The zero-value placeholder is the only invalid handle.
func (e Event[T]) Valid() bool {
	return e.cell != nil
}

// Available reports whether the result has been set.
// When it returns true, [Event.Wait] returns immediately without blocking or invoking hooks.
func (e Event[T]) Available() bool {
	assert.True("event handle is bound", e.Valid())
	return e.cell.Available()
}

// Wait blocks the calling goroutine until the result is ready, then returns it.
//
// If the result is already available, Wait returns it immediately; neither hook runs.
// Otherwise Wait calls the on-block-start hook, suspends through the handle's [Context], calls the on-block-end hook with the same keys, and returns the value.
// Blocking on a handle with no [Context] is a fatal assertion failure.
//
// Wait must not be called from a goroutine the producer needs to make progress, or neither side can advance.
// Inside such code paths, use [Event.OnReady] instead.
func (e Event[T]) Wait() T {
	assert.True("event handle is bound", e.Valid())
	if !e.cell.Available() {
		assert.NotNil("event context for a blocking wait", e.ctx)
		keys := e.onBlockStart()
		e.ctx.Await(e.cell)
		e.onBlockEnd(keys)
	}
	return e.cell.Value()
}

// OnReady registers fn to be called exactly once with the eventual result.
//
// If the result is already available, fn may run immediately on the calling goroutine, before OnReady returns.
// Otherwise it runs later on the producer's goroutine when it sets the value.
// fn must not block indefinitely and must not assume a particular goroutine identity.
func (e Event[T]) OnReady(fn func(T)) {
	assert.True("event handle is bound", e.Valid())
	cell := e.cell
	cell.AndThen(func() {
		fn(cell.Value())
	})
}

// Promise is the producer half of a deferred [Event]: a settable reference to an empty cell, handed out by [NewPromise] before the work runs.
// Pass it to [FromPromise] to mint consumer handles, keep it in the producer, and call [Promise.Set] exactly once when the work finishes — on failure paths too, with the failure encoded in T.
//
// The zero value is unbound ([Promise.Valid] reports false).
type Promise[T any] struct {
	cell *Cell[T]
}

// NewPromise creates a [Promise] over a fresh, empty cell.
func NewPromise[T any]() Promise[T] {
	return Promise[T]{cell: NewCell[T]()}
}

// Valid reports whether the promise is bound to a cell.
func (p Promise[T]) Valid() bool {
	return p.cell != nil
}

// Set delivers the result to every handle minted from this promise, via blocking waits and callbacks alike.
// Must be called exactly once; a second call is a fatal assertion failure.
func (p Promise[T]) Set(val T) {
	assert.True("promise is bound to a cell", p.Valid())
	p.cell.Set(val)
}

// Cell exposes the underlying cell, for producers that integrate with [New] directly.
func (p Promise[T]) Cell() *Cell[T] {
	return p.cell
}
