package storage

import (
	"sync"

	"github.com/bookerang/bookerang/internal/capture"
)

// CaptureStore tracks the capture machines the web UI is driving, one per
// open capture modal.
type CaptureStore struct {
	sessions map[string]*capture.Machine
	mu       sync.RWMutex
}

func New() *CaptureStore {
	return &CaptureStore{
		sessions: make(map[string]*capture.Machine),
	}
}

func (s *CaptureStore) Get(sessionID string) (*capture.Machine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	machine, exists := s.sessions[sessionID]
	return machine, exists
}

func (s *CaptureStore) Set(sessionID string, machine *capture.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = machine
}

func (s *CaptureStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Delete closes the machine before dropping it so a dismissed modal can never
// leak a held stream.
func (s *CaptureStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if machine, exists := s.sessions[sessionID]; exists {
		machine.Close()
		delete(s.sessions, sessionID)
	}
}
