package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store used by tests and as a fallback when no
// device database is available.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool

	// FailSets forces Set to return the given error, for failure-path tests
	FailSets error
	// FailGets forces Get to return the given error
	FailGets error
	// FailDeletes forces Delete to return the given error
	FailDeletes error
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func compose(namespace, key string) string {
	return namespace + "\x00" + key
}

func (m *Memory) Get(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailGets != nil {
		return "", false, m.FailGets
	}
	v, ok := m.data[compose(namespace, key)]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSets != nil {
		return m.FailSets
	}
	m.data[compose(namespace, key)] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDeletes != nil {
		return m.FailDeletes
	}
	delete(m.data, compose(namespace, key))
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
