package events

import (
	"sync"
	"time"
)

// InMemoryStore keeps the audit trail in process memory
type InMemoryStore struct {
	mutex       sync.RWMutex
	streams     map[string][]Event
	allEvents   []Event
	subscribers map[string][]Handler
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty audit trail
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]Handler),
	}
}

// Append records an event at the end of the stream and notifies
// subscribers for its type. Notification is synchronous; a slow handler
// delays the appender, not other streams.
func (s *InMemoryStore) Append(streamID, eventType string, data map[string]string) error {
	s.mutex.Lock()
	event := Event{
		Type:      eventType,
		StreamID:  streamID,
		Data:      data,
		Timestamp: time.Now().UTC(),
		Version:   len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], event)
	s.allEvents = append(s.allEvents, event)
	handlers := append([]Handler(nil), s.subscribers[eventType]...)
	s.mutex.Unlock()

	for _, h := range handlers {
		if h.CanHandle(eventType) {
			// Handler errors do not fail the append; the event is
			// already recorded.
			_ = h.Handle(event)
		}
	}
	return nil
}

// History returns the stream's events in append order
func (s *InMemoryStore) History(streamID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]Event(nil), s.streams[streamID]...), nil
}

// All returns every recorded event in append order
func (s *InMemoryStore) All() ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]Event(nil), s.allEvents...), nil
}

// Subscribe registers handler for the given event types
func (s *InMemoryStore) Subscribe(eventTypes []string, handler Handler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, t := range eventTypes {
		s.subscribers[t] = append(s.subscribers[t], handler)
	}
	return nil
}
