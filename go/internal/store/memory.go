package store

import (
	"context"
	"sync"
)

// Memory is an in-process backend, used by tests and the "memory" backend setting
type Memory struct {
	mu   sync.RWMutex
	data map[Key][]byte
}

// NewMemory returns an empty Memory backend
func NewMemory() *Memory {
	return &Memory{data: make(map[Key][]byte)}
}

func (m *Memory) Read(_ context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (m *Memory) Write(_ context.Context, key Key, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = buf
	return nil
}
