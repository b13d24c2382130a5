package asyncx

import (
	"sync"

	"github.com/saylorsolutions/asyncx/assert"
)

// Cell is a thread-safe slot for a single value of type T.
// A Cell starts empty (or concrete, with [NewCellOf]), is written at most once with [Cell.Set], and is immutable afterward.
// Cells are shared by pointer: every [Event] copy holding the same *Cell observes the same value, and the cell lives as long as any holder does.
//
// Exactly one writer may call [Cell.Set] over the cell's lifetime.
// This is a contract, not a type-system guarantee; a second Set is a fatal assertion failure.
type Cell[T any] struct {
	done chan struct{}

	mu    sync.Mutex
	next  []func()
	wrote bool
	val   T
}

// NewCell creates an empty [Cell] that will be populated later by its writer.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{
		done: make(chan struct{}),
	}
}

// NewCellOf creates a [Cell] that is already concrete, holding val.
// Useful for eagerly-known results, such as validation errors produced before any work is enqueued.
func NewCellOf[T any](val T) *Cell[T] {
	c := NewCell[T]()
	c.Set(val)
	return c
}

// Available reports whether the cell holds its value yet.
func (c *Cell[T]) Available() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Set transitions the cell from empty to concrete, waking every goroutine blocked on [Cell.Done] and running registered continuations.
// Continuations run on the calling goroutine, after the cell is marked concrete.
//
// Set must be called exactly once per cell. A second call is a fatal assertion failure.
func (c *Cell[T]) Set(val T) {
	c.mu.Lock()
	assert.True("completion cell is written at most once", !c.wrote)
	c.wrote = true
	c.val = val
	// The value store above happens-before this close, so any reader woken by
	// Done or Available sees the value without further locking.
	close(c.done)
	next := c.next
	c.next = nil
	c.mu.Unlock()

	for _, fn := range next {
		fn()
	}
}

// Value returns the stored value.
// The cell must be concrete; reading an empty cell is a fatal assertion failure.
// The value never changes after [Cell.Set], so concurrent calls need no synchronization.
func (c *Cell[T]) Value() T {
	assert.TrueFunc("completion cell is concrete before read", c.Available)
	return c.val
}

// Done returns a channel that is closed when the cell becomes concrete.
// It satisfies [Waiter], making the cell awaitable through a [Context].
func (c *Cell[T]) Done() <-chan struct{} {
	return c.done
}

// AndThen registers fn to run exactly once, after the cell becomes concrete.
// If the cell is already concrete, fn runs immediately on the calling goroutine before AndThen returns.
// Otherwise it runs on whichever goroutine calls [Cell.Set].
//
// fn must not block indefinitely and must not assume a particular goroutine identity.
func (c *Cell[T]) AndThen(fn func()) {
	c.mu.Lock()
	if c.Available() {
		c.mu.Unlock()
		fn()
		return
	}
	c.next = append(c.next, fn)
	c.mu.Unlock()
}
