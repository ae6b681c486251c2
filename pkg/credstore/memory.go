package credstore

import (
	"context"
	"sync"
)

// Memory is an in-process credential slot. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory creates an empty in-memory credential slot.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *Memory) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
