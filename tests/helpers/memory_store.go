package helpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/history"
)

// MemoryHistoryStore is an in-memory history.Store for tests that exercise
// the HTTP surface without a database.
type MemoryHistoryStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*history.Record

	// SaveErr, when set, makes Save fail; used to test degraded persistence.
	SaveErr error
}

// NewMemoryHistoryStore creates an empty in-memory store
func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{records: make(map[uuid.UUID]*history.Record)}
}

// Save implements history.Store
func (m *MemoryHistoryStore) Save(ctx context.Context, record *history.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	record.ID = uuid.New()
	record.CreatedAt = time.Now().UTC()
	stored := *record
	m.records[record.ID] = &stored
	return nil
}

// Get implements history.Store
func (m *MemoryHistoryStore) Get(ctx context.Context, id uuid.UUID) (*history.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return nil, history.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

// ListByUser implements history.Store, newest first
func (m *MemoryHistoryStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*history.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var records []*history.Record
	for _, record := range m.records {
		if record.UserID == userID {
			copied := *record
			records = append(records, &copied)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if offset >= len(records) {
		return []*history.Record{}, nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

// Count returns the number of stored records
func (m *MemoryHistoryStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
