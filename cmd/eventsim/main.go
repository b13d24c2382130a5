// Command eventsim simulates a device-style work queue built on asyncx events.
//
// Producers pull tasks from a queue, sleep for a randomized "execution" time, and
// always set their promise, encoding simulated faults in the result value. The
// consumer side either blocks on each event in turn or registers callbacks,
// with block tracing wired through the hook pair.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/saylorsolutions/asyncx"
	"github.com/saylorsolutions/asyncx/trace"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

type taskResult struct {
	task int
	took time.Duration
	err  error
}

type pendingTask struct {
	task    int
	promise asyncx.Promise[taskResult]
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func main() {
	var (
		tasks    = flag.Int("tasks", 8, "Number of simulated device tasks to enqueue")
		workers  = flag.Int("workers", 4, "Number of producer goroutines completing tasks")
		maxDelay = flag.Duration("max-delay", 250*time.Millisecond, "Upper bound on simulated task duration")
		failRate = flag.Float64("fail-rate", 0.25, "Probability that a task reports a simulated fault")
		callback = flag.Bool("callback", false, "Consume results with OnReady callbacks instead of blocking waits")
		verbose  = flag.Bool("verbose", false, "Log at debug level, including block tracing")
	)
	flag.Parse()
	if *tasks < 1 || *workers < 1 || *maxDelay <= 0 {
		fmt.Fprintln(os.Stderr, "tasks and workers must be at least 1, and max-delay must be positive")
		flag.Usage()
		os.Exit(1)
	}

	log := newLogger(*verbose)
	startHook, endHook := trace.NewRecorder(log).Hooks()
	ctx := asyncx.NewContext()

	queue := make(chan pendingTask)
	events := make([]asyncx.Event[taskResult], *tasks)
	pending := make([]pendingTask, *tasks)
	for i := range events {
		pending[i] = pendingTask{task: i, promise: asyncx.NewPromise[taskResult]()}
		events[i] = asyncx.FromPromise(ctx, pending[i].promise,
			asyncx.WithBlockStart(startHook),
			asyncx.WithBlockEnd(endHook),
		)
	}

	var producers sync.WaitGroup
	for w := 0; w < *workers; w++ {
		producers.Add(1)
		go func(worker int) {
			defer producers.Done()
			for job := range queue {
				took := time.Duration(rand.Int63n(int64(*maxDelay)))
				time.Sleep(took)
				res := taskResult{task: job.task, took: took}
				if rand.Float64() < *failRate {
					res.err = fmt.Errorf("task %d: simulated device fault", job.task)
				}
				log.Debug("task complete", "worker", worker, "task", job.task, "took", took, "failed", res.err != nil)
				// Always set, success or failure alike. An unset promise
				// would block its consumer forever.
				job.promise.Set(res)
			}
		}(w)
	}
	go func() {
		defer close(queue)
		for _, job := range pending {
			queue <- job
		}
	}()

	begin := time.Now()
	var failed int
	if *callback {
		var consumers sync.WaitGroup
		var mu sync.Mutex
		for _, ev := range events {
			consumers.Add(1)
			ev.OnReady(func(res taskResult) {
				defer consumers.Done()
				if res.err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
					log.Warn("task failed", "task", res.task, "error", res.err)
				}
			})
		}
		consumers.Wait()
	} else {
		for _, ev := range events {
			res := ev.Wait()
			if res.err != nil {
				failed++
				log.Warn("task failed", "task", res.task, "error", res.err)
			}
		}
	}
	producers.Wait()

	log.Info("simulation complete",
		"tasks", *tasks,
		"workers", *workers,
		"failed", failed,
		"elapsed", time.Since(begin),
	)
}
