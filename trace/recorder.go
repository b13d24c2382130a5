package trace

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/saylorsolutions/asyncx"
)

// Recorder is a ready-made implementation of the asyncx block hooks that logs blocking intervals through [slog].
// Each interval gets a unique [asyncx.ProfilingKeys.TraceContextID], so overlapping waits from different goroutines stay distinguishable in the log stream.
//
// A single Recorder is safe for concurrent use by any number of events.
type Recorder struct {
	log    *slog.Logger
	nextID atomic.Uint64

	mu      sync.Mutex
	started map[uint64]time.Time
}

// NewRecorder creates a [Recorder] that logs through log.
// A nil log falls back to [slog.Default].
func NewRecorder(log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{
		log:     log,
		started: map[uint64]time.Time{},
	}
}

// BlockStart opens a new blocking interval and returns its keys.
// It matches [asyncx.OnBlockStartFn].
func (r *Recorder) BlockStart() asyncx.ProfilingKeys {
	id := r.nextID.Add(1)
	r.mu.Lock()
	r.started[id] = time.Now()
	r.mu.Unlock()
	r.log.Debug("blocking on event", "trace_context_id", id)
	return asyncx.ProfilingKeys{TraceContextID: id}
}

// BlockEnd closes the interval identified by keys and logs its duration.
// It matches [asyncx.OnBlockEndFn].
// Keys that were not produced by this Recorder's [Recorder.BlockStart] log a warning and are otherwise ignored.
func (r *Recorder) BlockEnd(keys asyncx.ProfilingKeys) {
	r.mu.Lock()
	start, ok := r.started[keys.TraceContextID]
	if ok {
		delete(r.started, keys.TraceContextID)
	}
	r.mu.Unlock()
	if !ok {
		r.log.Warn("block end without matching start", "trace_context_id", keys.TraceContextID)
		return
	}
	r.log.Debug("resumed from event", "trace_context_id", keys.TraceContextID, "blocked_for", time.Since(start))
}

// Hooks returns the hook pair for passing to [asyncx.WithBlockStart] and [asyncx.WithBlockEnd].
func (r *Recorder) Hooks() (asyncx.OnBlockStartFn, asyncx.OnBlockEndFn) {
	return r.BlockStart, r.BlockEnd
}

// Pending reports how many blocking intervals have started but not yet ended.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.started)
}
