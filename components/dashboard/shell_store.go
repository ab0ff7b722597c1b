package dashboard

import (
	"fmt"
	"sync"
	"time"
)

// InMemoryShellStore is the concurrency-safe default ShellStore.
type InMemoryShellStore struct {
	mu     sync.RWMutex
	shells map[string]*Shell
}

// NewInMemoryShellStore creates an empty store.
func NewInMemoryShellStore() *InMemoryShellStore {
	return &InMemoryShellStore{shells: make(map[string]*Shell)}
}

// Put stores a shell under its id.
func (s *InMemoryShellStore) Put(shell *Shell) error {
	if shell == nil || shell.ID() == "" {
		return fmt.Errorf("dashboard: shell store requires a shell id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.shells[shell.ID()]; exists {
		return fmt.Errorf("dashboard: shell %s already stored", shell.ID())
	}
	s.shells[shell.ID()] = shell
	return nil
}

// Get fetches a shell by id.
func (s *InMemoryShellStore) Get(id string) (*Shell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shell, ok := s.shells[id]
	return shell, ok
}

// Remove deletes and returns a shell.
func (s *InMemoryShellStore) Remove(id string) (*Shell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shell, ok := s.shells[id]
	if ok {
		delete(s.shells, id)
	}
	return shell, ok
}

// List returns every stored shell.
func (s *InMemoryShellStore) List() []*Shell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Shell, 0, len(s.shells))
	for _, shell := range s.shells {
		out = append(out, shell)
	}
	return out
}

// Idle lists shells last seen before cutoff.
func (s *InMemoryShellStore) Idle(cutoff time.Time) []*Shell {
	// shell locks are taken outside the store lock
	var idle []*Shell
	for _, shell := range s.List() {
		if shell.LastSeen().Before(cutoff) {
			idle = append(idle, shell)
		}
	}
	return idle
}

// Len reports how many shells are stored.
func (s *InMemoryShellStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shells)
}
