/*
Package asyncx provides a single-writer, multi-reader completion event for APIs that enqueue asynchronous work.
A producer obtains a [Promise], hands out copies of the matching [Event] handle, does its work, and calls [Promise.Set] exactly once.
Consumers pick between [Event.Wait] for a blocking result and [Event.OnReady] for a callback, without ever touching the cell that carries the value.

The [Cell] type underneath is deliberately small: set once, read many, no cancellation, no timeouts, no combinators.
Producers that need to report failure encode it in T, typically as a status- or error-carrying struct, and must set every event they create, error paths included.
A cell that is never set blocks its waiters forever; that is a bug in the producer, not in this package.
*/
package asyncx
