package assistant

import (
	"sync"
	"time"
)

const (
	defaultMaxTurns    = 40
	defaultSessionIdle = 30 * time.Minute
)

type session struct {
	messages []Message
	lastUsed time.Time
}

// SessionStore keeps chat history per session id. Only completed
// exchanges are recorded: a user turn is stored together with the model
// turn that answered it.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	maxTurns int
	idle     time.Duration
	now      func() time.Time
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		maxTurns: defaultMaxTurns,
		idle:     defaultSessionIdle,
		now:      time.Now,
	}
}

// History returns a copy of the recorded turns for id
func (s *SessionStore) History(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	return append([]Message(nil), sess.messages...)
}

// Transcript returns the greeting followed by the recorded turns
func (s *SessionStore) Transcript(id string) []Message {
	return append([]Message{{Speaker: SpeakerModel, Text: Greeting}}, s.History(id)...)
}

// Record appends a completed exchange and trims the oldest turns beyond the limit
func (s *SessionStore) Record(id string, user, model Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictIdle()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	sess.messages = append(sess.messages, user, model)
	if over := len(sess.messages) - s.maxTurns; over > 0 {
		sess.messages = append([]Message(nil), sess.messages[over:]...)
	}
	sess.lastUsed = s.now()
}

// Reset forgets a session
func (s *SessionStore) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// evictIdle drops sessions unused for longer than the idle window. Caller holds mu.
func (s *SessionStore) evictIdle() {
	cutoff := s.now().Add(-s.idle)
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
