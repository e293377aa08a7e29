package repo

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps the activity log in process. Used when no
// DATABASE_URL is configured and in tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	now       func() time.Time
	lastLogin map[string]time.Time
	reports   []Report
	nextID    int
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{now: time.Now, lastLogin: map[string]time.Time{}}
}

func (m *MemoryRepository) RecordLogin(ctx context.Context, login string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLogin[login] = m.now()
	return nil
}

func (m *MemoryRepository) LastLogin(ctx context.Context, login string) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	at, ok := m.lastLogin[login]
	return at, ok, nil
}

func (m *MemoryRepository) SaveReport(ctx context.Context, r Report) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = m.now()
	}
	m.reports = append(m.reports, r)
	return r.ID, nil
}

// ListReports returns the newest reports of login first.
func (m *MemoryRepository) ListReports(ctx context.Context, login string, limit int) ([]Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Report{}
	for i := len(m.reports) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if m.reports[i].Login == login {
			out = append(out, m.reports[i])
		}
	}
	return out, nil
}
