package session

import "sync"

// MemoryStore holds the session in process memory. Used by tests and by
// callers that must not touch the filesystem.
type MemoryStore struct {
	mu      sync.Mutex
	current Session
	Writes  int
}

// NewMemoryStore returns a store seeded with s.
func NewMemoryStore(s Session) *MemoryStore {
	return &MemoryStore{current: s}
}

// Load returns a copy of the held session.
func (m *MemoryStore) Load() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySession(m.current)
}

// Update merges u into the held session.
func (m *MemoryStore) Update(u Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = u.Apply(copySession(m.current))
	m.Writes++
	return nil
}

// Clear resets the held session to the zero Session.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	m.Writes++
	return nil
}

func copySession(s Session) Session {
	if s.FolderID != nil {
		id := *s.FolderID
		s.FolderID = &id
	}
	return s
}

var _ Store = (*MemoryStore)(nil)
