package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/configurator/pkg/history"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to keep records.
	// 0 keeps records forever.
	RetentionDays int

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces retention on a history storage.
type Pruner struct {
	storage   history.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
	onPrune   func(removed int64)
	now       func() time.Time
}

// NewPruner creates a pruner over storage.
func NewPruner(storage history.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	p := &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "history.retention"),
		now:     time.Now,
	}
	p.scheduler = NewScheduler(p)
	return p
}

// OnPrune registers fn to receive the number of records removed by every
// successful Prune.
func (p *Pruner) OnPrune(fn func(removed int64)) *Pruner {
	p.onPrune = fn
	return p
}

// Scheduler returns the scheduler bound to this pruner.
func (p *Pruner) Scheduler() *Scheduler {
	return p.scheduler
}

// Prune deletes expired records and trims the store to MaxRecords.
// It returns the total number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by age: %w", err)
		}
		total += deleted
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by count: %w", err)
		}
		total += deleted
	}

	if p.onPrune != nil {
		p.onPrune(total)
	}

	if total > 0 {
		p.logger.Info("history pruned",
			"deleted", total,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Debug("no history records pruned")
	}

	return total, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)

	p.logger.Debug("pruning by age", "cutoff", cutoff)

	return p.storage.Delete(ctx, &history.Query{EndTime: &cutoff})
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &history.Query{})
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	excess := int(count - p.config.MaxRecords)
	oldest, err := p.storage.Query(ctx, &history.Query{
		SortOrder: history.SortAscending,
		Limit:     excess,
	})
	if err != nil {
		return 0, fmt.Errorf("query oldest records: %w", err)
	}
	if len(oldest) == 0 {
		return 0, nil
	}

	ids := make([]string, len(oldest))
	for i, r := range oldest {
		ids[i] = r.ID
	}

	p.logger.Debug("pruning by count",
		"current", count,
		"max_records", p.config.MaxRecords,
		"to_delete", len(ids),
	)

	return p.storage.Delete(ctx, &history.Query{IDs: ids})
}
