package kv

import "sync"

// memoryKV is a map-backed KV for tests and ephemeral sessions that should
// not touch disk.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ KV = &memoryKV{}

func NewMemory() KV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", &ErrKeyNotFound{Key: key}
	}
	return value, nil
}

func (m *memoryKV) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryKV) Close() error {
	return nil
}
