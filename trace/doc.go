/*
Package trace connects asyncx block hooks to structured logging.

The core event type brackets every blocking wait with a start hook and an end hook, but ships only no-op defaults.
[Recorder] fills that slot with an slog-backed implementation that tags each interval with a unique trace context ID and logs how long the wait lasted.
*/
package trace
