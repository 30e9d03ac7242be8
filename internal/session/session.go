// Package session keeps the downloadable outputs of pipeline runs.
//
// A Session starts empty. A successful run replaces its outputs wholesale;
// a failed run leaves it untouched. Sessions idle for longer than the store
// TTL are dropped the next time a session is created.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoOutputs is returned when an artifact is requested before any successful run
	ErrNoOutputs = errors.New("no generated outputs in session")
)

// Kind names a downloadable output
type Kind string

const (
	KindReport      Kind = "report"
	KindSpreadsheet Kind = "spreadsheet"
)

// Artifact is one finished buffer offered for download
type Artifact struct {
	Kind        Kind
	FileName    string
	ContentType string
	Data        []byte

	// Revision and ModTime are stamped by Session.Overwrite
	Revision uint64
	ModTime  time.Time
}

// ETag returns a strong entity tag that changes with every run of the session
func (a Artifact) ETag(sessionID string) string {
	return fmt.Sprintf(`"%s-%d-%s"`, sessionID, a.Revision, a.Kind)
}

// Size returns the artifact length in bytes
func (a Artifact) Size() int {
	return len(a.Data)
}

// Session is the mutable run context of one user
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.RWMutex
	outputs    map[Kind]Artifact
	revision   uint64
	updatedAt  time.Time
	lastAccess time.Time
	now        func() time.Time
}

func newSession(now func() time.Time) *Session {
	t := now()
	return &Session{
		ID:         uuid.New().String(),
		CreatedAt:  t,
		lastAccess: t,
		now:        now,
	}
}

// Overwrite replaces every output of the session with artifacts and stamps
// them with a new revision
func (s *Session) Overwrite(artifacts ...Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.revision++
	s.updatedAt = now
	s.lastAccess = now

	outputs := make(map[Kind]Artifact, len(artifacts))
	for _, a := range artifacts {
		a.Revision = s.revision
		a.ModTime = now
		outputs[a.Kind] = a
	}
	s.outputs = outputs
}

// Clear drops all outputs
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.revision++
	s.updatedAt = now
	s.lastAccess = now
	s.outputs = nil
}

// UpdatedAt returns when the outputs last changed; zero if they never have
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// HasOutputs reports whether a run has completed since creation or the last Clear
func (s *Session) HasOutputs() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outputs) > 0
}

// Artifact returns the output of the given kind
func (s *Session) Artifact(kind Kind) (Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = s.now()

	if len(s.outputs) == 0 {
		return Artifact{}, ErrNoOutputs
	}
	a, ok := s.outputs[kind]
	if !ok {
		return Artifact{}, ErrNoOutputs
	}
	return a, nil
}

// Artifacts returns all outputs sorted by kind
func (s *Session) Artifacts() []Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Artifact, 0, len(s.outputs))
	for _, a := range s.outputs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastAccess = s.now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAccess
}
