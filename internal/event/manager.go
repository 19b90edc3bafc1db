package event

import (
	"sync"

	"MeetBoard/internal/logger"
)

// Handler receives dispatched events.
type Handler func(e Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Manager handles subscriptions and dispatch. Handlers run synchronously on
// the dispatching goroutine, in subscription order.
type Manager struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Type][]subscription
}

func NewManager() *Manager {
	return &Manager{handlers: make(map[Type][]subscription)}
}

// Subscribe registers handler for the given types and returns a function
// that removes it again.
func (m *Manager) Subscribe(handler Handler, types ...Type) (unsubscribe func()) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	for _, t := range types {
		m.handlers[t] = append(m.handlers[t], subscription{id: id, handler: handler})
	}
	m.mu.Unlock()
	logger.DebugTagf("event", "Handler %d subscribed to %v", id, types)

	var once sync.Once
	return func() {
		once.Do(func() { m.remove(id) })
	}
}

func (m *Manager) remove(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for t, subs := range m.handlers {
		kept := subs[:0]
		for _, s := range subs {
			if s.id != id {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(m.handlers, t)
		} else {
			m.handlers[t] = kept
		}
	}
}

// Dispatch sends an event to every handler registered for its type.
func (m *Manager) Dispatch(t Type, data any) {
	m.mu.RLock()
	subs := make([]subscription, len(m.handlers[t]))
	copy(subs, m.handlers[t])
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}
	e := Event{Type: t, Data: data}
	for _, s := range subs {
		s.handler(e)
	}
}
