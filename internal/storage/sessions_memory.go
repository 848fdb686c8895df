package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fromtimwithcode/nhs-os-rpg-game-react/internal/game"
)

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*game.Session
}

// NewMemorySessionStore keeps sessions in process memory.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]*game.Session)}
}

func (m *memorySessionStore) Create(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; ok {
		return ErrSessionExists
	}
	m.sessions[s.ID] = cloneSession(s)
	return nil
}

func (m *memorySessionStore) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (m *memorySessionStore) Update(_ context.Context, id string, fn func(s *game.Session) error) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	work := cloneSession(cur)
	if err := fn(work); err != nil {
		return nil, err
	}
	m.sessions[id] = work
	return cloneSession(work), nil
}

func (m *memorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memorySessionStore) SweepIdle(_ context.Context, cutoff time.Time) ([]game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.Session
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			out = append(out, *s)
			delete(m.sessions, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

func (m *memorySessionStore) Close() error { return nil }
