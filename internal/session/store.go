package session

import (
	"log/slog"
	"sync"
	"time"
)

// Store is an in-memory registry of sessions
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the store logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store. A non-positive ttl disables expiry.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new empty session, dropping expired ones first. It
// returns the new session and the number of expired sessions dropped.
func (s *Store) Create() (*Session, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	swept := s.sweepLocked()
	sess := newSession(s.now)
	s.sessions[sess.ID] = sess

	s.logger.Debug("session created", slog.String("session_id", sess.ID), slog.Int("active", len(s.sessions)))
	return sess, swept
}

// Get returns a live session and refreshes its idle timer. Expired sessions
// are reported as not found and stay registered until the next sweep.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		return nil, ErrSessionNotFound
	}
	sess.touch()
	return sess, nil
}

// Delete clears and removes a session
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Clear()
	delete(s.sessions, id)

	s.logger.Debug("session deleted", slog.String("session_id", id))
	return nil
}

// Len returns the number of registered sessions, expired ones included until swept
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() int {
	if s.ttl <= 0 {
		return 0
	}
	dropped := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			sess.Clear()
			delete(s.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		s.logger.Info("expired sessions dropped", slog.Int("count", dropped), slog.Int("active", len(s.sessions)))
	}
	return dropped
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.idleSince()) > s.ttl
}
