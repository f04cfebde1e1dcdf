package editor

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no editor is registered under an ID.
var ErrSessionNotFound = errors.New("canvas session not found")

// Sessions keeps the open editors of a server process keyed by ID.
//
// Sessions is safe for concurrent use. The lock only guards the map; each
// Editor is still meant to be driven by one caller at a time.
//
// # Memory Management
//
// Editors, and with them their full undo history, stay in memory until
// Close or Clear is called.
type Sessions struct {
	mu      sync.RWMutex
	editors map[string]*Editor
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{
		editors: make(map[string]*Editor),
	}
}

// Create opens a new width x height canvas and returns its ID.
func (s *Sessions) Create(width, height int) (string, *Editor, error) {
	ed, err := New(width, height)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()

	s.mu.Lock()
	s.editors[id] = ed
	s.mu.Unlock()

	return id, ed, nil
}

// Get returns the editor registered under id.
func (s *Sessions) Get(id string) (*Editor, error) {
	s.mu.RLock()
	ed, ok := s.editors[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return ed, nil
}

// Close removes the editor registered under id.
func (s *Sessions) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.editors[id]; !ok {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	delete(s.editors, id)
	return nil
}

// Clear removes every editor.
func (s *Sessions) Clear() {
	s.mu.Lock()
	s.editors = make(map[string]*Editor)
	s.mu.Unlock()
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.editors)
}

// IDs returns the open session IDs in sorted order.
func (s *Sessions) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.editors))
	for id := range s.editors {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids
}
