package practice

import (
	"log/slog"
	"time"

	"github.com/satprep/practice/internal/timer"
)

// Timer names within a session.
const (
	TimerElapsed = "elapsed"
	TimerSection = "section"
)

// Event types published for a session.
const (
	EventTick     = "tick"
	EventTimeUp   = "time_up"
	EventFinished = "finished"
)

// Event is published to a session's subscribers on every timer transition.
type Event struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Timer     string          `json:"timer,omitempty"`
	State     *timer.Snapshot `json:"state,omitempty"`
}

// Publisher delivers session events to whoever is listening.
type Publisher interface {
	Publish(sessionID string, event Event)
}

// Snapshot is the observable state of a whole session.
type Snapshot struct {
	ID        string         `json:"id"`
	Section   string         `json:"section"`
	CreatedAt time.Time      `json:"createdAt"`
	Hidden    bool           `json:"hidden"`
	Elapsed   timer.Snapshot `json:"elapsed"`
	Countdown timer.Snapshot `json:"countdown"`
}

// Session is one practice sitting: a stopwatch for total elapsed time and a
// countdown for the current section, both paused while the page is hidden.
type Session struct {
	ID        string
	Section   string
	CreatedAt time.Time

	elapsed    *timer.Engine
	countdown  *timer.Engine
	visibility *timer.VisibilitySource
	group      *timer.Group
	updates    [2]<-chan timer.Snapshot
	done       chan struct{}
}

func newSession(id, section string, sectionSeconds int, now time.Time, opts []timer.Option) (*Session, error) {
	countdown, err := timer.NewCountdown(sectionSeconds, opts...)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:         id,
		Section:    section,
		CreatedAt:  now,
		elapsed:    timer.NewStopwatch(opts...),
		countdown:  countdown,
		visibility: timer.NewVisibilitySource(),
		group:      timer.NewGroup(),
		done:       make(chan struct{}),
	}
	s.group.Add(TimerElapsed, s.elapsed)
	s.group.Add(TimerSection, s.countdown)
	s.group.Watch(s.visibility)
	s.updates = [2]<-chan timer.Snapshot{s.elapsed.Subscribe(16), s.countdown.Subscribe(16)}
	return s, nil
}

func (s *Session) engine(name string) *timer.Engine {
	switch name {
	case TimerElapsed:
		return s.elapsed
	case TimerSection:
		return s.countdown
	}
	return nil
}

// forward relays engine transitions to pub until both engines are closed.
func (s *Session) forward(pub Publisher, logger *slog.Logger) {
	defer close(s.done)

	elapsed, section := s.updates[0], s.updates[1]
	timeUp := s.countdown.State().IsTimeUp

	for elapsed != nil || section != nil {
		select {
		case snap, ok := <-elapsed:
			if !ok {
				elapsed = nil
				continue
			}
			pub.Publish(s.ID, Event{Type: EventTick, SessionID: s.ID, Timer: TimerElapsed, State: &snap})
		case snap, ok := <-section:
			if !ok {
				section = nil
				continue
			}
			pub.Publish(s.ID, Event{Type: EventTick, SessionID: s.ID, Timer: TimerSection, State: &snap})
			if snap.IsTimeUp && !timeUp {
				logger.Info("section time up", "session_id", s.ID, "section", s.Section)
				pub.Publish(s.ID, Event{Type: EventTimeUp, SessionID: s.ID, Timer: TimerSection, State: &snap})
			}
			timeUp = snap.IsTimeUp
		}
	}
}

// Snapshot returns the current state of both timers.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:        s.ID,
		Section:   s.Section,
		CreatedAt: s.CreatedAt,
		Hidden:    s.group.Hidden(),
		Elapsed:   s.elapsed.Snapshot(),
		Countdown: s.countdown.Snapshot(),
	}
}

func (s *Session) close() {
	s.group.Close()
	s.elapsed.Close()
	s.countdown.Close()
}
