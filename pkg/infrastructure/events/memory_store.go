package events

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultRetention is the number of events kept per store
const DefaultRetention = 1000

// InMemoryEventStore keeps the most recent events for the lifetime of the
// process. Older events are dropped once retention is reached; versions and
// positions keep counting.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	position    int
	dropped     int
	allEvents   []Event
	retention   int
	logger      *zap.Logger
	pending     sync.WaitGroup
}

func NewInMemoryEventStore(logger *zap.Logger) *InMemoryEventStore {
	return NewInMemoryEventStoreWithRetention(logger, DefaultRetention)
}

func NewInMemoryEventStoreWithRetention(logger *zap.Logger, retention int) *InMemoryEventStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		retention:   retention,
		logger:      logger,
	}
}

// Verify interface compliance
var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stream := s.streams[streamID]
	version := 1
	if len(stream) > 0 {
		version = stream[len(stream)-1].Version() + 1
	}

	eventWithVersion := BaseEvent{
		EventID:      event.ID(),
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: version,
	}

	s.streams[streamID] = trim(append(stream, eventWithVersion), s.retention)
	s.allEvents = append(s.allEvents, eventWithVersion)
	if len(s.allEvents) > s.retention {
		over := len(s.allEvents) - s.retention
		s.allEvents = append([]Event(nil), s.allEvents[over:]...)
		s.dropped += over
	}
	s.position++

	s.notifySubscribers(eventWithVersion)

	return nil
}

func trim(events []Event, retention int) []Event {
	if len(events) <= retention {
		return events
	}
	return append([]Event(nil), events[len(events)-retention:]...)
}

// ReadEvents returns the retained events of a stream with version >= fromVersion
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := s.streams[streamID]
	result := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Version() >= fromVersion {
			result = append(result, e)
		}
	}
	return result, nil
}

// ReadAllEvents returns retained events from an absolute position onwards
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	idx := fromPosition - s.dropped
	if idx < 0 {
		idx = 0
	}

	if idx >= len(s.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[idx:]...), nil
}

// Position returns the number of events ever appended
func (s *InMemoryEventStore) Position() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.position
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}

	return nil
}

func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		newHandlers := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				newHandlers = append(newHandlers, h)
			}
		}
		s.subscribers[eventType] = newHandlers
	}

	return nil
}

// Wait blocks until every handler dispatched so far has returned
func (s *InMemoryEventStore) Wait() {
	s.pending.Wait()
}

// notifySubscribers must be called with the mutex held
func (s *InMemoryEventStore) notifySubscribers(event Event) {
	for _, handler := range s.subscribers[event.Type()] {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		s.pending.Add(1)
		go func(h EventHandler, e Event) {
			defer s.pending.Done()
			if err := h.Handle(e); err != nil {
				s.logger.Warn("event handler failed",
					zap.String("event_type", e.Type()),
					zap.String("event_id", e.ID()),
					zap.Error(err))
			}
		}(handler, event)
	}
}
