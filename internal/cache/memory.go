package cache

import (
	"context"
	"sync"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// Memory is an in-process forecast cache bounded by entry count. When full
// it evicts the oldest entry, which keeps memory flat without TTL plumbing.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]domain.Answer
	order    []string
	capacity int
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 256
	}
	return &Memory{
		entries:  make(map[string]domain.Answer),
		capacity: capacity,
	}
}

func (m *Memory) Get(ctx context.Context, key string) (*domain.Answer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	answer, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return &answer, true
}

func (m *Memory) Set(ctx context.Context, key string, answer *domain.Answer) {
	if answer == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		if len(m.order) >= m.capacity {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.entries, oldest)
		}
		m.order = append(m.order, key)
	}
	m.entries[key] = *answer
}
