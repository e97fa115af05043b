package contentstore

import (
	"context"
	"sync"
)

// Memory keeps objects in process.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) PutObject(_ context.Context, key string, body []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = append([]byte(nil), body...)

	return nil
}

// Object returns the body stored under key.
func (m *Memory) Object(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.objects[key]

	return b, ok
}
