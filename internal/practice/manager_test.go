package practice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/satprep/practice/internal/timer"
)

type memRecorder struct {
	mu      sync.Mutex
	results []Result
	err     error
}

func (r *memRecorder) RecordResult(_ context.Context, res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, res)
	return nil
}

type chanPublisher struct {
	events chan Event
}

func (p chanPublisher) Publish(_ string, e Event) {
	select {
	case p.events <- e:
	default:
	}
}

func newTestManager(t *testing.T) (*Manager, *timer.ManualScheduler, *memRecorder, chanPublisher) {
	t.Helper()
	sched := timer.NewManualScheduler()
	rec := &memRecorder{}
	pub := chanPublisher{events: make(chan Event, 256)}
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	m := NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)), rec, pub, Config{
		DefaultSectionSeconds: 1920,
		Scheduler:             sched,
		Now:                   func() time.Time { return fixed },
	})
	t.Cleanup(func() { m.Close(context.Background()) })
	return m, sched, rec, pub
}

func intPtr(n int) *int { return &n }

func TestCreateUsesDefaultSection(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	snap, err := m.Create(context.Background(), CreateRequest{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if snap.Section != "practice" {
		t.Errorf("section = %q, want practice", snap.Section)
	}
	if snap.Countdown.Formatted != "32:00" || snap.Countdown.Running {
		t.Errorf("countdown = %+v", snap.Countdown)
	}
	if snap.Elapsed.Formatted != "00:00" || snap.Elapsed.Running {
		t.Errorf("elapsed = %+v", snap.Elapsed)
	}
}

func TestCreateRejectsNegativeSection(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	_, err := m.Create(context.Background(), CreateRequest{SectionSeconds: intPtr(-5)})
	if !errors.Is(err, timer.ErrInvalidDuration) {
		t.Fatalf("err = %v, want ErrInvalidDuration", err)
	}
	if len(m.List()) != 0 {
		t.Fatal("rejected session was kept")
	}
}

func TestSessionTicksAndFinishes(t *testing.T) {
	m, sched, rec, _ := newTestManager(t)
	ctx := context.Background()

	snap, err := m.Create(ctx, CreateRequest{Section: "Math Module 1", SectionSeconds: intPtr(60), AutoStart: true})
	if err != nil {
		t.Fatal(err)
	}
	sched.Advance(45)

	got, err := m.Get(snap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Elapsed.Counter != 45 || got.Countdown.Counter != 15 {
		t.Fatalf("counters = %d / %d, want 45 / 15", got.Elapsed.Counter, got.Countdown.Counter)
	}

	res, err := m.Finish(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if res.ElapsedSeconds != 45 || res.RemainingSeconds != 15 || res.TimeUp {
		t.Errorf("result = %+v", res)
	}
	if res.Section != "Math Module 1" || res.SectionSeconds != 60 {
		t.Errorf("result = %+v", res)
	}
	if len(rec.results) != 1 || rec.results[0].ID != snap.ID {
		t.Errorf("recorded = %+v", rec.results)
	}
	if _, err := m.Get(snap.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get after finish err = %v", err)
	}
}

func TestSectionTimeUpKeepsStopwatchRunning(t *testing.T) {
	m, sched, _, pub := newTestManager(t)
	ctx := context.Background()

	snap, err := m.Create(ctx, CreateRequest{SectionSeconds: intPtr(3), AutoStart: true})
	if err != nil {
		t.Fatal(err)
	}
	sched.Advance(5)

	got, _ := m.Get(snap.ID)
	if !got.Countdown.IsTimeUp || got.Countdown.Running {
		t.Errorf("countdown = %+v", got.Countdown)
	}
	if got.Elapsed.Counter != 5 || !got.Elapsed.Running {
		t.Errorf("elapsed = %+v", got.Elapsed)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-pub.events:
			if e.Type == EventTimeUp {
				if e.SessionID != snap.ID {
					t.Fatalf("time_up for %q, want %q", e.SessionID, snap.ID)
				}
				return
			}
		case <-deadline:
			t.Fatal("no time_up event")
		}
	}
}

func TestVisibilityRestoresPreHideState(t *testing.T) {
	m, sched, _, _ := newTestManager(t)
	ctx := context.Background()

	snap, err := m.Create(ctx, CreateRequest{SectionSeconds: intPtr(600), AutoStart: true})
	if err != nil {
		t.Fatal(err)
	}
	sched.Advance(10)
	if _, err := m.Pause(snap.ID, TimerSection); err != nil {
		t.Fatal(err)
	}

	hidden, err := m.SetVisibility(snap.ID, timer.Hidden)
	if err != nil {
		t.Fatal(err)
	}
	if !hidden.Hidden || hidden.Elapsed.Running || hidden.Countdown.Running {
		t.Fatalf("hidden snapshot = %+v", hidden)
	}
	sched.Advance(100)

	visible, err := m.SetVisibility(snap.ID, timer.Visible)
	if err != nil {
		t.Fatal(err)
	}
	if !visible.Elapsed.Running {
		t.Error("stopwatch did not resume")
	}
	if visible.Countdown.Running {
		t.Error("user-paused countdown resumed")
	}
	if visible.Elapsed.Counter != 10 || visible.Countdown.Counter != 590 {
		t.Errorf("counters = %d / %d, want 10 / 590", visible.Elapsed.Counter, visible.Countdown.Counter)
	}
}

func TestStartWhileHiddenIsDeferred(t *testing.T) {
	m, sched, _, _ := newTestManager(t)

	snap, _ := m.Create(context.Background(), CreateRequest{SectionSeconds: intPtr(60)})
	m.SetVisibility(snap.ID, timer.Hidden)

	got, err := m.Start(snap.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.Elapsed.Running || got.Countdown.Running {
		t.Fatal("timers started while hidden")
	}
	sched.Advance(3)

	got, _ = m.SetVisibility(snap.ID, timer.Visible)
	if !got.Elapsed.Running || !got.Countdown.Running {
		t.Fatalf("deferred start not applied: %+v", got)
	}
}

func TestResetSingleTimer(t *testing.T) {
	m, sched, _, _ := newTestManager(t)

	snap, _ := m.Create(context.Background(), CreateRequest{SectionSeconds: intPtr(90), AutoStart: true})
	sched.Advance(20)

	got, err := m.Reset(snap.ID, TimerSection)
	if err != nil {
		t.Fatal(err)
	}
	if got.Countdown.Counter != 90 || !got.Countdown.Running {
		t.Errorf("countdown = %+v", got.Countdown)
	}
	if got.Elapsed.Counter != 20 {
		t.Errorf("elapsed = %+v", got.Elapsed)
	}
}

func TestManagerErrors(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	snap, _ := m.Create(context.Background(), CreateRequest{})

	if _, err := m.Start("missing", ""); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Start(missing) err = %v", err)
	}
	if _, err := m.Pause(snap.ID, "lap"); !errors.Is(err, ErrUnknownTimer) {
		t.Errorf("Pause(lap) err = %v", err)
	}
	if _, err := m.SetVisibility(snap.ID, "prerender"); !errors.Is(err, ErrInvalidVisibility) {
		t.Errorf("SetVisibility(prerender) error = %v, want ErrInvalidVisibility", err)
	}
	if _, err := m.Finish(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Finish(missing) err = %v", err)
	}
}

func TestFinishReportsRecorderError(t *testing.T) {
	m, _, rec, _ := newTestManager(t)
	rec.err = errors.New("disk full")

	snap, _ := m.Create(context.Background(), CreateRequest{})
	if _, err := m.Finish(context.Background(), snap.ID); err == nil {
		t.Fatal("Finish succeeded despite recorder error")
	}
	if _, err := m.Get(snap.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("session kept after failed record")
	}
}

func TestCloseFinishesAll(t *testing.T) {
	m, _, rec, _ := newTestManager(t)
	for i := 0; i < 3; i++ {
		if _, err := m.Create(context.Background(), CreateRequest{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(m.List()) != 0 || len(rec.results) != 3 {
		t.Fatalf("live = %d recorded = %d", len(m.List()), len(rec.results))
	}
}
