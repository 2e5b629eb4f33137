package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-chatkit/audit"
	"github.com/goliatone/go-chatkit/conform"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records []*audit.Record
}

// NewMemoryRepository returns an in-memory audit.Repository used by tests
// and hosts that do not wire a database.
func NewMemoryRepository() audit.Repository {
	return &memoryRepository{}
}

func (m *memoryRepository) Create(_ context.Context, record *audit.Record) (*audit.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := cloneRecord(record)
	m.records = append(m.records, clone)
	return cloneRecord(clone), nil
}

func (m *memoryRepository) List(_ context.Context, input audit.ListInput) ([]*audit.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*audit.Record, 0, len(m.records))
	for _, record := range m.records {
		if input.Kind != "" && record.Kind != input.Kind {
			continue
		}
		if input.Category != "" && record.Category != input.Category {
			continue
		}
		out = append(out, cloneRecord(record))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if input.Limit > 0 && len(out) > input.Limit {
		out = out[:input.Limit]
	}
	return out, nil
}

func (m *memoryRepository) DeleteBefore(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	removed := 0
	for _, record := range m.records {
		if record.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	m.records = kept
	return removed, nil
}

func cloneRecord(record *audit.Record) *audit.Record {
	clone := *record
	if record.Violations != nil {
		clone.Violations = append([]conform.Violation(nil), record.Violations...)
	}
	if record.Payload != nil {
		clone.Payload = append([]byte(nil), record.Payload...)
	}
	return &clone
}
