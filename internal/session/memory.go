package session

import (
	"sync"

	"github.com/sornss/location/internal/location"
)

// Memory is an in-process session, used by the CLI and in tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]*location.Location
}

func NewMemory() *Memory {
	return &Memory{values: map[string]*location.Location{}}
}

func (m *Memory) Has(key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok, nil
}

func (m *Memory) Get(key string) (*location.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *Memory) Set(key string, loc *location.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = loc
	return nil
}

func (m *Memory) Forget(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
