package mcp

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultMaxEventsPerStream is how many outgoing events each stream keeps
// for replay.
const DefaultMaxEventsPerStream = 100

// Ensure EventStore implements the SDK interface.
var _ mcp.EventStore = (*EventStore)(nil)

// EventStore keeps the most recent events of every HTTP stream in memory so
// that a client reconnecting with Last-Event-ID receives what it missed.
// Each stream holds at most a fixed number of events; older ones are
// dropped and can no longer be replayed.
type EventStore struct {
	maxEvents int

	mu       sync.Mutex
	sessions map[string]map[string]*eventLog // session ID -> stream ID -> log
}

// eventLog is one stream's retained events. first is the stream index of
// events[0].
type eventLog struct {
	first  int
	events [][]byte
}

// NewEventStore creates an EventStore that keeps up to maxEvents events per
// stream. A non-positive maxEvents selects DefaultMaxEventsPerStream.
func NewEventStore(maxEvents int) *EventStore {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEventsPerStream
	}
	return &EventStore{
		maxEvents: maxEvents,
		sessions:  make(map[string]map[string]*eventLog),
	}
}

// Open implements mcp.EventStore.
func (s *EventStore) Open(_ context.Context, sessionID, streamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log(sessionID, streamID)
	return nil
}

// Append implements mcp.EventStore.
func (s *EventStore) Append(_ context.Context, sessionID, streamID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.log(sessionID, streamID)
	if len(l.events) == s.maxEvents {
		l.events[0] = nil
		l.events = l.events[1:]
		l.first++
	}
	l.events = append(l.events, data)
	return nil
}

// After implements mcp.EventStore. It fails with mcp.ErrEventsPurged when
// the event following index has already been dropped.
func (s *EventStore) After(_ context.Context, sessionID, streamID string, index int) iter.Seq2[[]byte, error] {
	events, err := s.after(sessionID, streamID, index)
	return func(yield func([]byte, error) bool) {
		if err != nil {
			yield(nil, err)
			return
		}
		for _, e := range events {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (s *EventStore) after(sessionID, streamID string, index int) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.sessions[sessionID][streamID]
	if !ok {
		return nil, fmt.Errorf("unknown stream %q in session %q", streamID, sessionID)
	}
	start := index + 1
	if start < l.first {
		return nil, fmt.Errorf("stream %q after index %d: %w", streamID, index, mcp.ErrEventsPurged)
	}
	if start-l.first >= len(l.events) {
		return nil, nil
	}
	return slices.Clone(l.events[start-l.first:]), nil
}

// SessionClosed implements mcp.EventStore.
func (s *EventStore) SessionClosed(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len returns the number of retained events for a stream.
func (s *EventStore) Len(sessionID, streamID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.sessions[sessionID][streamID]; ok {
		return len(l.events)
	}
	return 0
}

// log returns the stream's log, creating it if needed. Requires s.mu.
func (s *EventStore) log(sessionID, streamID string) *eventLog {
	streams, ok := s.sessions[sessionID]
	if !ok {
		streams = make(map[string]*eventLog)
		s.sessions[sessionID] = streams
	}
	l, ok := streams[streamID]
	if !ok {
		l = &eventLog{}
		streams[streamID] = l
	}
	return l
}
