package repo

import (
	"context"
	"sync"

	"codemix/internal/services/learning/domain"
)

// Memory keeps the encoded snapshot in process, for tests and ephemeral runs
type Memory struct {
	mu    sync.Mutex
	body  []byte
	saves int
}

// NewMemory constructs an empty Memory store
func NewMemory() *Memory { return &Memory{} }

// Kind implements Storage
func (m *Memory) Kind() string { return "memory" }

// Load implements Storage
func (m *Memory) Load(_ context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.body == nil {
		return nil, nil
	}
	return CodecMsgpack.Decode(m.body)
}

// Save implements Storage
func (m *Memory) Save(_ context.Context, s *domain.Snapshot) error {
	b, err := CodecMsgpack.Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.body = b
	m.saves++
	m.mu.Unlock()
	return nil
}

// Saves reports how many snapshots were written
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
