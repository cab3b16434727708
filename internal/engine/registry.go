package engine

import (
	"errors"
	"sync"
)

var (
	ErrUnknownItem    = errors.New("unknown exercise item")
	ErrUnknownSession = errors.New("unknown exercise session")
)

// Registry enumerates the live exercise sessions, one per started attempt.
// Each session is owned by whoever started it; the registry only looks
// them up and drops them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}

// Remove drops a session, stopping its countdown first.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		if cd := s.Countdown(); cd != nil {
			cd.Stop()
		}
		delete(r.sessions, id)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
