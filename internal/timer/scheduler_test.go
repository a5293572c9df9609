package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerSchedulerFiresUntilCancelled(t *testing.T) {
	var calls atomic.Int64
	cancel := NewTickerScheduler().Every(2*time.Millisecond, func() { calls.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d calls before deadline", calls.Load())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	cancel()
	// Allow one in-flight callback to land.
	time.Sleep(10 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got != settled {
		t.Fatalf("calls kept growing after cancel: %d -> %d", settled, got)
	}
}

func TestEngineWithRealTicker(t *testing.T) {
	sw := NewStopwatch(WithInterval(2 * time.Millisecond))
	defer sw.Close()

	sw.Start()
	deadline := time.Now().Add(2 * time.Second)
	for sw.Counter() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("counter = %d before deadline", sw.Counter())
		}
		time.Sleep(time.Millisecond)
	}

	sw.Pause()
	paused := sw.Counter()
	time.Sleep(20 * time.Millisecond)
	if got := sw.Counter(); got != paused {
		t.Fatalf("counter moved after pause: %d -> %d", paused, got)
	}
}

func TestManualSchedulerCancelDuringAdvance(t *testing.T) {
	sched := NewManualScheduler()
	var a, b int
	var cancelB func()
	sched.Every(time.Second, func() {
		a++
		cancelB()
	})
	cancelB = sched.Every(time.Second, func() { b++ })

	sched.Advance(2)
	if a != 2 || b != 0 {
		t.Fatalf("a = %d b = %d, want 2 0", a, b)
	}
}
