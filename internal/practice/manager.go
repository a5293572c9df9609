// Package practice runs practice sessions: each session owns an elapsed-time
// stopwatch and a section countdown and reports finished sittings to a
// history recorder.
package practice

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/satprep/practice/internal/timer"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrUnknownTimer      = errors.New("unknown timer")
	ErrInvalidVisibility = errors.New("invalid visibility")
)

// Result is the record kept for a finished session.
type Result struct {
	ID               string    `json:"id"`
	Section          string    `json:"section"`
	SectionSeconds   int       `json:"sectionSeconds"`
	ElapsedSeconds   int       `json:"elapsedSeconds"`
	RemainingSeconds int       `json:"remainingSeconds"`
	TimeUp           bool      `json:"timeUp"`
	StartedAt        time.Time `json:"startedAt"`
	FinishedAt       time.Time `json:"finishedAt"`
}

// Recorder stores finished session results.
type Recorder interface {
	RecordResult(ctx context.Context, res Result) error
}

// Config tunes a Manager.
type Config struct {
	TickInterval          time.Duration
	DefaultSectionSeconds int
	Scheduler             timer.Scheduler
	Now                   func() time.Time
}

// CreateRequest describes a new session. A nil SectionSeconds uses the
// manager's default.
type CreateRequest struct {
	Section        string
	SectionSeconds *int
	AutoStart      bool
}

// Manager owns the live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*managed
	logger   *slog.Logger
	recorder Recorder
	pub      Publisher
	cfg      Config
}

type managed struct {
	*Session
	sectionSeconds int
}

func NewManager(logger *slog.Logger, recorder Recorder, pub Publisher, cfg Config) *Manager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = timer.NewTickerScheduler()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if pub == nil {
		pub = discard{}
	}
	return &Manager{
		sessions: make(map[string]*managed),
		logger:   logger,
		recorder: recorder,
		pub:      pub,
		cfg:      cfg,
	}
}

// Create starts tracking a new session.
func (m *Manager) Create(_ context.Context, req CreateRequest) (Snapshot, error) {
	seconds := m.cfg.DefaultSectionSeconds
	if req.SectionSeconds != nil {
		seconds = *req.SectionSeconds
	}
	section := strings.TrimSpace(req.Section)
	if section == "" {
		section = "practice"
	}

	s, err := newSession(newID(), section, seconds, m.cfg.Now().UTC(), []timer.Option{
		timer.WithScheduler(m.cfg.Scheduler),
		timer.WithInterval(m.cfg.TickInterval),
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("creating session: %w", err)
	}

	m.mu.Lock()
	m.sessions[s.ID] = &managed{Session: s, sectionSeconds: seconds}
	m.mu.Unlock()

	go s.forward(m.pub, m.logger)

	if req.AutoStart {
		s.group.Start(TimerElapsed)
		s.group.Start(TimerSection)
	}

	m.logger.Info("session created", "session_id", s.ID, "section", section, "section_seconds", seconds)
	return s.Snapshot(), nil
}

func (m *Manager) get(id string) (*managed, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Get returns the current snapshot of a live session.
func (m *Manager) Get(id string) (Snapshot, error) {
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// List returns snapshots of every live session, oldest first.
func (m *Manager) List() []Snapshot {
	m.mu.RLock()
	out := make([]Snapshot, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Snapshot())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// timerNames resolves an optional timer name; empty means both.
func timerNames(name string) ([]string, error) {
	switch name {
	case "":
		return []string{TimerElapsed, TimerSection}, nil
	case TimerElapsed, TimerSection:
		return []string{name}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTimer, name)
}

// Start starts one timer, or both when name is empty. While the page is
// hidden the start is deferred until it becomes visible.
func (m *Manager) Start(id, name string) (Snapshot, error) {
	return m.apply(id, name, func(s *managed, n string) { s.group.Start(n) })
}

// Pause pauses one timer, or both when name is empty.
func (m *Manager) Pause(id, name string) (Snapshot, error) {
	return m.apply(id, name, func(s *managed, n string) { s.group.Pause(n) })
}

// Reset resets one timer, or both when name is empty.
func (m *Manager) Reset(id, name string) (Snapshot, error) {
	return m.apply(id, name, func(s *managed, n string) { s.engine(n).Reset() })
}

func (m *Manager) apply(id, name string, fn func(*managed, string)) (Snapshot, error) {
	names, err := timerNames(name)
	if err != nil {
		return Snapshot{}, err
	}
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	for _, n := range names {
		fn(s, n)
	}
	return s.Snapshot(), nil
}

// SetVisibility reports the host page's visibility for a session.
func (m *Manager) SetVisibility(id string, v timer.Visibility) (Snapshot, error) {
	if v != timer.Visible && v != timer.Hidden {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidVisibility, v)
	}
	s, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	s.visibility.Set(v)
	m.logger.Debug("session visibility changed", "session_id", id, "visibility", v)
	return s.Snapshot(), nil
}

// Finish stops a session, records its result and forgets it.
func (m *Manager) Finish(ctx context.Context, id string) (Result, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return Result{}, ErrSessionNotFound
	}

	s.close()
	<-s.done

	elapsed := s.elapsed.Snapshot()
	countdown := s.countdown.Snapshot()
	res := Result{
		ID:               s.ID,
		Section:          s.Section,
		SectionSeconds:   s.sectionSeconds,
		ElapsedSeconds:   elapsed.Counter,
		RemainingSeconds: countdown.Counter,
		TimeUp:           countdown.IsTimeUp,
		StartedAt:        s.CreatedAt,
		FinishedAt:       m.cfg.Now().UTC(),
	}
	m.pub.Publish(s.ID, Event{Type: EventFinished, SessionID: s.ID})

	if m.recorder != nil {
		if err := m.recorder.RecordResult(ctx, res); err != nil {
			return res, fmt.Errorf("recording result for session %s: %w", id, err)
		}
	}

	m.logger.Info("session finished",
		"session_id", id,
		"elapsed_seconds", res.ElapsedSeconds,
		"remaining_seconds", res.RemainingSeconds,
		"time_up", res.TimeUp,
	)
	return res, nil
}

// Close finishes every live session.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if _, err := m.Finish(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type discard struct{}

func (discard) Publish(string, Event) {}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
