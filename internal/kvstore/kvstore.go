package kvstore

import "sync"

// Store is the persistent profile storage the state layer writes
// through: the same get/set/remove contract the browser localStorage
// gave the original views, made injectable so the layer tests without
// a real database.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)
}

type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}
