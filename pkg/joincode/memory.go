package joincode

import (
	"context"
	"sync"
)

// MemoryStore keeps reservations in process
type MemoryStore struct {
	codes map[string]bool
	lock  sync.Mutex
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]bool),
	}
}

// Reserve claims the code
func (m *MemoryStore) Reserve(_ context.Context, code string) (bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.codes[code] {
		return false, nil
	}

	m.codes[code] = true
	return true, nil
}

// Release frees the code
func (m *MemoryStore) Release(_ context.Context, code string) error {
	m.lock.Lock()
	delete(m.codes, code)
	m.lock.Unlock()

	return nil
}
