package recordstore

import (
	"context"
	"sync"

	"github.com/SergeyParamoshkin/articles/internal/record"
)

// Memory keeps records in process, in insertion order.
type Memory struct {
	mu      sync.RWMutex
	records []record.Record
	index   map[string]int
}

func NewMemory() *Memory {
	return &Memory{index: map[string]int{}}
}

func (m *Memory) Get(_ context.Context, id string) (record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return record.Record{}, nil
	}

	return clone(m.records[i]), nil
}

func (m *Memory) Put(_ context.Context, r record.Record) error {
	id, err := keyOf(r)
	if err != nil {
		return fail("put", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i, ok := m.index[id]; ok {
		m.records[i] = clone(r)

		return nil
	}

	m.index[id] = len(m.records)
	m.records = append(m.records, clone(r))

	return nil
}

func (m *Memory) Scan(_ context.Context, limit int) ([]record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.records)
	if limit >= 0 && limit < n {
		n = limit
	}

	out := make([]record.Record, 0, n)
	for _, r := range m.records[:n] {
		out = append(out, clone(r))
	}

	return out, nil
}

func clone(r record.Record) record.Record {
	c := make(record.Record, len(r))
	for k, v := range r {
		c[k] = v
	}

	return c
}
