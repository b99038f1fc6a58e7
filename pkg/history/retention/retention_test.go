package retention

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"mercator-hq/configurator/pkg/history"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func seedDays(t *testing.T, s history.Storage, ages ...int) {
	t.Helper()
	for i, age := range ages {
		r := &history.Record{
			ID:         fmt.Sprintf("r%02d", i),
			SessionID:  "s",
			ModelName:  "Wardrobe",
			RecordedAt: now.AddDate(0, 0, -age),
			PriceLimit: -1,
		}
		if err := s.Store(context.Background(), r); err != nil {
			t.Fatal(err)
		}
	}
}

func newPruner(s history.Storage, cfg *Config) *Pruner {
	p := NewPruner(s, cfg)
	p.now = func() time.Time { return now }
	return p
}

func remaining(t *testing.T, s history.Storage) []string {
	t.Helper()
	records, err := s.Query(context.Background(), &history.Query{SortOrder: history.SortAscending})
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestPruner_Prune(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		ages        []int
		wantDeleted int64
		wantLeft    []string
	}{
		{
			name:        "by age",
			config:      &Config{RetentionDays: 30},
			ages:        []int{100, 45, 10, 1},
			wantDeleted: 2,
			wantLeft:    []string{"r02", "r03"},
		},
		{
			name:        "by count keeps newest",
			config:      &Config{MaxRecords: 2},
			ages:        []int{4, 3, 2, 1},
			wantDeleted: 2,
			wantLeft:    []string{"r02", "r03"},
		},
		{
			name:        "both phases",
			config:      &Config{RetentionDays: 30, MaxRecords: 1},
			ages:        []int{90, 5, 3, 1},
			wantDeleted: 3,
			wantLeft:    []string{"r03"},
		},
		{
			name:        "disabled",
			config:      &Config{},
			ages:        []int{400, 1},
			wantDeleted: 0,
			wantLeft:    []string{"r00", "r01"},
		},
		{
			name:        "within limit",
			config:      &Config{MaxRecords: 5},
			ages:        []int{2, 1},
			wantDeleted: 0,
			wantLeft:    []string{"r00", "r01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := history.NewMemoryStorage()
			seedDays(t, store, tt.ages...)

			deleted, err := newPruner(store, tt.config).Prune(context.Background())
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != tt.wantDeleted {
				t.Errorf("Prune() deleted %d, want %d", deleted, tt.wantDeleted)
			}
			if got := remaining(t, store); !slices.Equal(got, tt.wantLeft) {
				t.Errorf("remaining = %v, want %v", got, tt.wantLeft)
			}
		})
	}
}

func TestPruner_OnPrune(t *testing.T) {
	store := history.NewMemoryStorage()
	seedDays(t, store, 10, 5, 1)

	var reported []int64
	p := newPruner(store, &Config{MaxRecords: 1}).OnPrune(func(removed int64) {
		reported = append(reported, removed)
	})

	for i := 0; i < 2; i++ {
		if _, err := p.Prune(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if !slices.Equal(reported, []int64{2, 0}) {
		t.Errorf("reported = %v, want [2 0]", reported)
	}
}

func TestPruner_StorageFailure(t *testing.T) {
	store := history.NewMemoryStorage()
	store.Close()

	_, err := newPruner(store, &Config{RetentionDays: 1}).Prune(context.Background())
	if err == nil {
		t.Error("Prune() on closed storage succeeded")
	}
}

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantRunning bool
		wantError   bool
	}{
		{name: "daily", schedule: "0 3 * * *", wantRunning: true},
		{name: "hourly", schedule: "0 * * * *", wantRunning: true},
		{name: "empty schedule", schedule: ""},
		{name: "invalid schedule", schedule: "whenever", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPruner(history.NewMemoryStorage(), &Config{PruneSchedule: tt.schedule, RetentionDays: 30})
			s := p.Scheduler()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := s.Start(ctx)
			if (err != nil) != tt.wantError {
				t.Fatalf("Start() error = %v, wantError %v", err, tt.wantError)
			}
			if s.IsRunning() != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", s.IsRunning(), tt.wantRunning)
			}

			if tt.wantRunning {
				next := s.NextRun()
				if next == nil || !next.After(time.Now()) {
					t.Errorf("NextRun() = %v, want a future time", next)
				}
				s.Stop()
				if s.IsRunning() {
					t.Error("IsRunning() after Stop() = true")
				}
			} else if s.NextRun() != nil {
				t.Error("NextRun() set without a schedule")
			}
		})
	}
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	p := NewPruner(history.NewMemoryStorage(), &Config{PruneSchedule: "0 3 * * *"})
	s := p.Scheduler()

	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for s.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.IsRunning() {
		t.Error("scheduler still running after context cancel")
	}
}
