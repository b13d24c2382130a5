package asyncx

// Waiter is anything that can be blocked on until an asynchronous result is ready.
// [Cell] is the only implementation in this package; the interface exists so a [Context] never depends on the cell's value type.
type Waiter interface {
	// Done returns a channel that is closed once the result is ready.
	Done() <-chan struct{}
}

// Context performs blocking waits on behalf of [Event] handles.
// It carries no cancellation and schedules no work; its only job is to suspend the calling goroutine until cells become concrete.
//
// A single Context is reusable and safe for concurrent use by any number of handles.
type Context struct{}

// NewContext returns a [Context] suitable for constructing events with [New] or [FromPromise].
func NewContext() *Context {
	return &Context{}
}

// Await blocks the calling goroutine until every listed [Waiter] is done.
// Callers should check availability first and skip the call when nothing is pending; [Event.Wait] does this.
func (c *Context) Await(ws ...Waiter) {
	for _, w := range ws {
		<-w.Done()
	}
}
