package server

import (
	"encoding/json"
	"sync"

	"github.com/satprep/practice/internal/practice"
)

// Broker fans practice events out to the SSE streams watching a session.
// A finished event is the last one a session produces: after delivering it
// the broker closes that session's channels and forgets them.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

func (b *Broker) Subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan []byte]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	return ch
}

// Unsubscribe is safe to call after the session finished.
func (b *Broker) Unsubscribe(sessionID string, ch chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.subs[sessionID]
	if !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(b.subs, sessionID)
	}
}

func (b *Broker) Publish(sessionID string, event practice.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	if event.Type == practice.EventFinished {
		b.finish(sessionID, data)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- data:
		default:
			// slow reader; it still gets the next tick
		}
	}
}

// finish delivers the final event where buffer space allows and closes
// every stream, so readers that missed it still terminate.
func (b *Broker) finish(sessionID string, data []byte) {
	b.mu.Lock()
	set := b.subs[sessionID]
	delete(b.subs, sessionID)
	b.mu.Unlock()

	for ch := range set {
		select {
		case ch <- data:
		default:
		}
		close(ch)
	}
}
