package trace

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/saylorsolutions/asyncx"
	"github.com/stretchr/testify/assert"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestRecorder_Intervals(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(testLogger(&buf))

	a := rec.BlockStart()
	b := rec.BlockStart()
	assert.NotEqual(t, a.TraceContextID, b.TraceContextID, "concurrent intervals should get distinct IDs")
	assert.Equal(t, 2, rec.Pending())

	rec.BlockEnd(a)
	assert.Equal(t, 1, rec.Pending())
	rec.BlockEnd(b)
	assert.Equal(t, 0, rec.Pending())

	out := buf.String()
	assert.Contains(t, out, "blocking on event")
	assert.Contains(t, out, "resumed from event")
	assert.Contains(t, out, "blocked_for")
}

func TestRecorder_UnmatchedEnd(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(testLogger(&buf))

	rec.BlockEnd(asyncx.ProfilingKeys{TraceContextID: 42})
	assert.Contains(t, buf.String(), "block end without matching start")
	assert.Equal(t, 0, rec.Pending())
}

func TestRecorder_AsEventHooks(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(testLogger(&buf))
	start, end := rec.Hooks()

	p := asyncx.NewPromise[int]()
	ev := asyncx.FromPromise(asyncx.NewContext(), p, asyncx.WithBlockStart(start), asyncx.WithBlockEnd(end))
	go func() {
		time.Sleep(50 * time.Millisecond)
		p.Set(7)
	}()
	assert.Equal(t, 7, ev.Wait())
	assert.Equal(t, 0, rec.Pending(), "the wait should close its interval")
	assert.Equal(t, 2, strings.Count(buf.String(), "trace_context_id"), "one start line and one end line")

	// An available event must not touch the hooks.
	buf.Reset()
	assert.Equal(t, 7, ev.Wait())
	assert.Empty(t, buf.String())
}
