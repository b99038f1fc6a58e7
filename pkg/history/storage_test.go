package history

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// backends returns a fresh instance of every Storage implementation.
func backends(t *testing.T) map[string]Storage {
	t.Helper()

	sqlite, err := NewSQLiteStorage(&SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "history.db"),
		WALMode:     true,
		BusyTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Storage{
		"memory": NewMemoryStorage(),
		"sqlite": sqlite,
	}
}

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func record(id, session string, offset time.Duration, valid bool, lines ...string) *Record {
	return &Record{
		ID:         id,
		SessionID:  session,
		ModelName:  "Wardrobe",
		RecordedAt: base.Add(offset),
		Valid:      valid,
		Instances:  3,
		Total:      147.5,
		PriceLimit: -1,
		Violations: lines,
	}
}

func seed(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()
	for _, r := range []*Record{
		record("a", "s1", 0, false, "Mirror requires Hinged Door."),
		record("b", "s1", time.Minute, true),
		record("c", "s2", 2*time.Minute, false, "Lamp and Shelf Light are mutually exclusive.", "Current product price is 20 above the set limit."),
		record("d", "s2", 3*time.Minute, true),
	} {
		if err := s.Store(ctx, r); err != nil {
			t.Fatalf("Store(%s) error = %v", r.ID, err)
		}
	}
}

func recordIDs(records []*Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestStorage_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			seed(t, s)

			got, err := s.Query(context.Background(), &Query{IDs: []string{"c"}})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Query() returned %d records, want 1", len(got))
			}

			r := got[0]
			want := record("c", "s2", 2*time.Minute, false, "Lamp and Shelf Light are mutually exclusive.", "Current product price is 20 above the set limit.")
			if r.ID != want.ID || r.SessionID != want.SessionID || r.ModelName != want.ModelName ||
				r.Valid != want.Valid || r.Instances != want.Instances ||
				r.Total != want.Total || r.PriceLimit != want.PriceLimit {
				t.Errorf("record = %+v, want %+v", r, want)
			}
			if !r.RecordedAt.Equal(want.RecordedAt) {
				t.Errorf("RecordedAt = %v, want %v", r.RecordedAt, want.RecordedAt)
			}
			if !slices.Equal(r.Violations, want.Violations) {
				t.Errorf("Violations = %q, want %q", r.Violations, want.Violations)
			}
		})
	}
}

func TestStorage_Query(t *testing.T) {
	valid := true
	start := base.Add(time.Minute)
	end := base.Add(2 * time.Minute)

	tests := []struct {
		name  string
		query *Query
		want  []string
	}{
		{name: "default newest first", query: &Query{}, want: []string{"d", "c", "b", "a"}},
		{name: "ascending", query: &Query{SortOrder: SortAscending}, want: []string{"a", "b", "c", "d"}},
		{name: "session", query: &Query{SessionID: "s1"}, want: []string{"b", "a"}},
		{name: "valid only", query: &Query{Valid: &valid}, want: []string{"d", "b"}},
		{name: "time range inclusive", query: &Query{StartTime: &start, EndTime: &end}, want: []string{"c", "b"}},
		{name: "limit and offset", query: &Query{Limit: 2, Offset: 1}, want: []string{"c", "b"}},
		{name: "offset past end", query: &Query{Offset: 10}, want: []string{}},
		{name: "model mismatch", query: &Query{ModelName: "Desk"}, want: []string{}},
	}

	for name, s := range backends(t) {
		seed(t, s)
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				got, err := s.Query(context.Background(), tt.query)
				if err != nil {
					t.Fatalf("Query() error = %v", err)
				}
				if !slices.Equal(recordIDs(got), tt.want) {
					t.Errorf("Query() = %v, want %v", recordIDs(got), tt.want)
				}
			})
		}
	}
}

func TestStorage_CountAndDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, s)

			n, err := s.Count(ctx, &Query{SessionID: "s2"})
			if err != nil || n != 2 {
				t.Errorf("Count(s2) = %d, %v, want 2", n, err)
			}

			cutoff := base.Add(time.Minute)
			deleted, err := s.Delete(ctx, &Query{EndTime: &cutoff})
			if err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if deleted != 2 {
				t.Errorf("Delete() = %d, want 2", deleted)
			}

			n, err = s.Count(ctx, &Query{})
			if err != nil || n != 2 {
				t.Errorf("Count() after delete = %d, %v, want 2", n, err)
			}

			deleted, err = s.Delete(ctx, &Query{IDs: []string{"c", "missing"}})
			if err != nil || deleted != 1 {
				t.Errorf("Delete(ids) = %d, %v, want 1", deleted, err)
			}
		})
	}
}

func TestStorage_Closed(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			err := s.Store(context.Background(), record("x", "s", 0, true))
			var storageErr *StorageError
			if !errors.As(err, &storageErr) || !errors.Is(err, ErrClosed) {
				t.Errorf("Store() after Close error = %v, want StorageError wrapping ErrClosed", err)
			}
			if storageErr != nil && storageErr.Backend != name {
				t.Errorf("Backend = %q, want %q", storageErr.Backend, name)
			}
		})
	}
}

func TestMemoryStorage_CopiesRecords(t *testing.T) {
	s := NewMemoryStorage()
	r := record("a", "s", 0, false, "line")
	if err := s.Store(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	r.Violations[0] = "changed"

	got, _ := s.Query(context.Background(), &Query{})
	if got[0].Violations[0] != "line" {
		t.Error("stored record shares memory with caller")
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d, want 1", s.Size())
	}
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	cfg := &SQLiteConfig{Path: path, WALMode: true, BusyTimeout: time.Second}

	s, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	seed(t, s)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewSQLiteStorage(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	n, err := reopened.Count(context.Background(), &Query{})
	if err != nil || n != 4 {
		t.Errorf("Count() after reopen = %d, %v, want 4", n, err)
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("sqlite", "store", cause)

	if err.Error() != "storage error [backend=sqlite, operation=store]: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not reach the cause")
	}
}
