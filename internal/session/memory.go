package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the pair in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(ctx context.Context) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[KeyAccessToken], m.values[KeyUser], nil
}

func (m *MemoryStore) Save(ctx context.Context, token, userJSON string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[KeyAccessToken] = token
	m.values[KeyUser] = userJSON
	return nil
}

// Set writes a single key. Tests use it to simulate a partial write.
func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Get reads a single raw key.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, KeyAccessToken)
	delete(m.values, KeyUser)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
