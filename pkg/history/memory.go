package history

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryStorage keeps records in memory. Nothing survives a restart.
type MemoryStorage struct {
	records map[string]*Record
	closed  bool
	mu      sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*Record),
	}
}

// Store persists a copy of record.
func (s *MemoryStorage) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("memory", "store", ErrClosed)
	}

	s.records[record.ID] = cloneRecord(record)
	return nil
}

// Query returns copies of the matching records.
func (s *MemoryStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("memory", "query", ErrClosed)
	}

	results := make([]*Record, 0)
	for _, record := range s.records {
		if matchesQuery(record, query) {
			results = append(results, cloneRecord(record))
		}
	}

	slices.SortFunc(results, func(a, b *Record) int {
		c := a.RecordedAt.Compare(b.RecordedAt)
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if query.SortOrder != SortAscending {
			c = -c
		}
		return c
	})

	start := min(query.Offset, len(results))
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	end := min(start+limit, len(results))

	return results[start:end], nil
}

// Count returns the number of matching records.
func (s *MemoryStorage) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, NewStorageError("memory", "count", ErrClosed)
	}

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes the matching records.
func (s *MemoryStorage) Delete(ctx context.Context, query *Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, NewStorageError("memory", "delete", ErrClosed)
	}

	var deleted int64
	for id, record := range s.records {
		if matchesQuery(record, query) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close drops all records.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*Record)
	s.closed = true
	return nil
}

// Size returns the number of stored records.
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

func matchesQuery(record *Record, query *Query) bool {
	if query.StartTime != nil && record.RecordedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.RecordedAt.After(*query.EndTime) {
		return false
	}
	if query.SessionID != "" && record.SessionID != query.SessionID {
		return false
	}
	if query.ModelName != "" && record.ModelName != query.ModelName {
		return false
	}
	if query.Valid != nil && record.Valid != *query.Valid {
		return false
	}
	if len(query.IDs) > 0 && !slices.Contains(query.IDs, record.ID) {
		return false
	}
	return true
}

func cloneRecord(r *Record) *Record {
	c := *r
	c.Violations = slices.Clone(r.Violations)
	return &c
}
