package timer

import "sync"

// Visibility is the host page's visibility as reported by the client.
type Visibility string

const (
	Visible Visibility = "visible"
	Hidden  Visibility = "hidden"
)

// VisibilitySource fans visibility transitions out to listeners. Setting
// the current value again notifies no one.
type VisibilitySource struct {
	mu        sync.Mutex
	current   Visibility
	nextID    int
	listeners map[int]func(Visibility)
}

// NewVisibilitySource returns a source that starts out visible.
func NewVisibilitySource() *VisibilitySource {
	return &VisibilitySource{
		current:   Visible,
		listeners: make(map[int]func(Visibility)),
	}
}

// Subscribe adds a listener and returns a func that removes it.
func (s *VisibilitySource) Subscribe(fn func(Visibility)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Set records v and notifies listeners if it differs from the current value.
func (s *VisibilitySource) Set(v Visibility) {
	s.mu.Lock()
	if v == s.current {
		s.mu.Unlock()
		return
	}
	s.current = v
	listeners := make([]func(Visibility), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

func (s *VisibilitySource) Current() Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Controller is the part of an Engine a Group drives.
type Controller interface {
	Start()
	Pause()
	Running() bool
}

// Group owns a set of timers that share one page. While the page is hidden
// every timer is paused; when it becomes visible again only the timers that
// were running before the hide are restarted. Start and Pause requests made
// while hidden are remembered and applied on the next visible transition.
type Group struct {
	mu          sync.Mutex
	names       []string
	timers      map[string]Controller
	hidden      bool
	resume      map[string]bool
	unsubscribe func()
}

func NewGroup() *Group {
	return &Group{
		timers: make(map[string]Controller),
		resume: make(map[string]bool),
	}
}

// Add puts a timer under the group's control. If the group is hidden the
// timer is paused immediately.
func (g *Group) Add(name string, c Controller) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.timers[name]; !ok {
		g.names = append(g.names, name)
	}
	g.timers[name] = c
	if g.hidden {
		g.resume[name] = c.Running()
		c.Pause()
	}
}

// Watch subscribes the group to src, applying its current value first.
// A group watches at most one source; a second call replaces the first.
func (g *Group) Watch(src *VisibilitySource) {
	g.mu.Lock()
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	g.mu.Unlock()

	unsubscribe := src.Subscribe(g.HandleVisibility)

	g.mu.Lock()
	g.unsubscribe = unsubscribe
	g.mu.Unlock()

	g.HandleVisibility(src.Current())
}

// HandleVisibility applies one visibility transition to every timer.
func (g *Group) HandleVisibility(v Visibility) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch v {
	case Hidden:
		if g.hidden {
			return
		}
		g.hidden = true
		for _, name := range g.names {
			c := g.timers[name]
			g.resume[name] = c.Running()
			c.Pause()
		}
	case Visible:
		if !g.hidden {
			return
		}
		g.hidden = false
		for _, name := range g.names {
			if g.resume[name] {
				g.timers[name].Start()
			}
		}
		clear(g.resume)
	}
}

// Start starts the named timer, or marks it to resume if the page is hidden.
// It reports whether the name is known.
func (g *Group) Start(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.timers[name]
	if !ok {
		return false
	}
	if g.hidden {
		g.resume[name] = true
		return true
	}
	c.Start()
	return true
}

// Pause pauses the named timer and cancels any pending resume.
func (g *Group) Pause(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.timers[name]
	if !ok {
		return false
	}
	g.resume[name] = false
	c.Pause()
	return true
}

func (g *Group) Hidden() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hidden
}

// Close detaches the group from its visibility source.
func (g *Group) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}
