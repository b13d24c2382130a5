package asyncx_test

import (
	"fmt"

	"github.com/saylorsolutions/asyncx"
)

// A result type carrying either a value or a failure, since events have no
// error channel of their own.
type result struct {
	value int
	err   error
}

func Example_blocking() {
	ctx := asyncx.NewContext()
	promise := asyncx.NewPromise[result]()
	event := asyncx.FromPromise(ctx, promise)

	go func() {
		// Producers must set every event they create, error paths included.
		promise.Set(result{value: 42})
	}()

	res := event.Wait()
	fmt.Println(res.value, res.err)
	// Output: 42 <nil>
}

func Example_callback() {
	done := make(chan struct{})
	promise := asyncx.NewPromise[string]()
	event := asyncx.FromPromise(asyncx.NewContext(), promise)

	event.OnReady(func(val string) {
		defer close(done)
		fmt.Println(val)
	})
	promise.Set("ready")
	<-done
	// Output: ready
}

func ExampleReady() {
	// Eager events are handy for failing fast before any work is enqueued.
	event := asyncx.Ready(result{err: fmt.Errorf("invalid argument")})
	fmt.Println(event.Available(), event.Wait().err)
	// Output: true invalid argument
}
