package vblank

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// Errors
var (
	ErrRunning = errors.New("vblank: runner already started")
)

// Handler is called on the pacing thread after every vblank.
//
// A failed wait is not reported to the handler; the runner waits one refresh period before
// trying again.
type Handler func(t time.Time)

// Runner drives a Monitor from a dedicated OS thread.
type Runner struct {
	monitor Monitor
	handler Handler
	log     logr.Logger

	mu    sync.Mutex
	stats *Stats
	stop  chan struct{}
	done  chan struct{}
}

// NewRunner returns a stopped runner. The handler may be nil.
func NewRunner(monitor Monitor, handler Handler, log logr.Logger) *Runner {
	return &Runner{
		monitor: monitor,
		handler: handler,
		log:     log.WithName("runner"),
		stats:   NewStats(DefaultStatsWindow),
	}
}

// Start the pacing loop.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return ErrRunning
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.run(r.stop, r.done)
	return nil
}

// Stop the pacing loop and wait for it to exit. A wait already in progress is not
// interrupted, so Stop returns after the current vblank. Stop must not be called from the
// handler.
func (r *Runner) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Stats returns the interval statistics so far.
func (r *Runner) Stats() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.Snapshot()
}

func (r *Runner) run(stop, done chan struct{}) {
	defer close(done)

	// The monitor's native calls expect a stable thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	rate := r.monitor.RefreshRate()
	period := rate.Period()
	if period <= 0 {
		period = FullSpeed.Period()
	}

	r.log.V(1).Info("started", "rate", rate.String())
	last := time.Now()
	for {
		select {
		case <-stop:
			r.log.V(1).Info("stopped")
			return
		default:
		}

		if !r.monitor.WaitForVBlank() {
			r.log.V(1).Info("vblank wait failed, backing off", "period", period.String())
			select {
			case <-stop:
				r.log.V(1).Info("stopped")
				return
			case <-time.After(period):
			}
			continue
		}
		now := time.Now()

		r.mu.Lock()
		r.stats.Add(now.Sub(last))
		r.mu.Unlock()
		last = now

		if r.handler != nil {
			r.handler(now)
		}
	}
}
