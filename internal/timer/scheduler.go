package timer

import (
	"sync"
	"time"
)

// Scheduler runs fn once per interval until the returned cancel func is
// called. Cancel must not block waiting for an in-flight fn.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler drives callbacks from a time.Ticker, one goroutine per
// registration.
type TickerScheduler struct{}

func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

func (TickerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
	}
}

// ManualScheduler fires registered callbacks only when Advance is called.
// Tests use it to simulate elapsed seconds without sleeping.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]func()
	order   []int
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{entries: make(map[int]func())}
}

func (m *ManualScheduler) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.entries[id] = fn
	m.order = append(m.order, id)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
	}
}

// Advance fires every active callback once per step, in registration order.
// Callbacks cancelled during a step are not fired for the rest of it.
func (m *ManualScheduler) Advance(steps int) {
	for i := 0; i < steps; i++ {
		m.mu.Lock()
		ids := make([]int, 0, len(m.entries))
		live := m.order[:0]
		for _, id := range m.order {
			if _, ok := m.entries[id]; ok {
				ids = append(ids, id)
				live = append(live, id)
			}
		}
		m.order = live
		m.mu.Unlock()

		for _, id := range ids {
			m.mu.Lock()
			fn, ok := m.entries[id]
			m.mu.Unlock()
			if ok {
				fn()
			}
		}
	}
}

// Active reports how many callback chains are currently registered.
func (m *ManualScheduler) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
