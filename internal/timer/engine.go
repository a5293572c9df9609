// Package timer implements the practice-session stopwatch and section
// countdown, plus the visibility policy that pauses them while the page is
// hidden.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidDuration is returned for a negative countdown total.
var ErrInvalidDuration = errors.New("invalid countdown duration")

var defaultScheduler Scheduler = NewTickerScheduler()

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler replaces the real-time ticker scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithInterval sets the tick interval. Each tick is one counted second
// regardless of the interval.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// Engine counts whole seconds up (stopwatch) or down (countdown).
type Engine struct {
	mu         sync.Mutex
	mode       Mode
	initial    int
	counter    int
	running    bool
	closed     bool
	interval   time.Duration
	scheduler  Scheduler
	cancel     func()
	generation uint64
	subs       []chan Snapshot
}

// NewStopwatch returns a paused engine counting up from zero.
func NewStopwatch(opts ...Option) *Engine {
	return newEngine(ModeStopwatch, 0, opts)
}

// NewCountdown returns a paused engine counting down from totalSeconds.
func NewCountdown(totalSeconds int, opts ...Option) (*Engine, error) {
	if totalSeconds < 0 {
		return nil, fmt.Errorf("%w: %d seconds", ErrInvalidDuration, totalSeconds)
	}
	return newEngine(ModeCountdown, totalSeconds, opts), nil
}

func newEngine(mode Mode, initial int, opts []Option) *Engine {
	e := &Engine{
		mode:      mode,
		initial:   initial,
		counter:   initial,
		interval:  time.Second,
		scheduler: defaultScheduler,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins ticking. Calling Start on a running engine, a closed engine
// or a countdown already at zero does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running || e.closed {
		return
	}
	if e.mode == ModeCountdown && e.counter == 0 {
		return
	}
	e.running = true
	e.generation++
	gen := e.generation
	e.cancel = e.scheduler.Every(e.interval, func() { e.scheduledTick(gen) })
	e.emitLocked()
}

// Pause stops ticking. Once Pause returns no pending tick can change the
// counter.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.stopLocked()
	e.emitLocked()
}

// Reset restores the initial counter and leaves the running flag as is.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.counter = e.initial
	e.emitLocked()
}

// Tick advances the engine by one second if it is running. The scheduler
// calls it once per interval; callers driving time by hand may call it
// directly.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.tickLocked()
}

func (e *Engine) scheduledTick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running || gen != e.generation {
		return
	}
	e.tickLocked()
}

func (e *Engine) tickLocked() {
	switch e.mode {
	case ModeStopwatch:
		e.counter++
	case ModeCountdown:
		if e.counter > 0 {
			e.counter--
		}
		if e.counter == 0 {
			e.stopLocked()
		}
	}
	e.emitLocked()
}

func (e *Engine) stopLocked() {
	e.running = false
	e.generation++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// State returns the display state for the current counter.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return StateOf(e.mode, e.counter)
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Counter returns elapsed seconds for a stopwatch, remaining seconds for a
// countdown.
func (e *Engine) Counter() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counter
}

func (e *Engine) Mode() Mode {
	return e.mode
}

// Snapshot returns counter, running flag and display state together.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		State:   StateOf(e.mode, e.counter),
		Mode:    e.mode,
		Counter: e.counter,
		Running: e.running,
	}
}

// Subscribe registers an observer that receives a snapshot after every
// transition. Slow observers miss updates rather than block the engine.
func (e *Engine) Subscribe(buffer int) <-chan Snapshot {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch
	}
	e.subs = append(e.subs, ch)
	return ch
}

// Close stops the engine for good and closes all observer channels.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.stopLocked()
	e.closed = true
	for _, ch := range e.subs {
		close(ch)
	}
	e.subs = nil
}

func (e *Engine) emitLocked() {
	snap := e.snapshotLocked()
	for _, ch := range e.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
