package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mercator-hq/configurator/pkg/validation"
)

// Record is one persisted validation run.
type Record struct {
	ID         string    `json:"id"`          // UUID v4
	SessionID  string    `json:"session_id"`  // Session that ran the validation
	ModelName  string    `json:"model_name"`  // Feature model name
	RecordedAt time.Time `json:"recorded_at"` // When the validation ran

	Valid      bool     `json:"valid"`
	Instances  int      `json:"instances"`   // Placed instance count
	Total      float64  `json:"total"`       // Running price total
	PriceLimit float64  `json:"price_limit"` // Ceiling, -1 when unlimited
	Violations []string `json:"violations"`  // Report lines
}

// NewRecord builds a record from a validation report.
func NewRecord(sessionID, modelName string, instances int, report *validation.Report) *Record {
	return &Record{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		ModelName:  modelName,
		RecordedAt: time.Now().UTC(),
		Valid:      report.Valid,
		Instances:  instances,
		Total:      report.Total,
		PriceLimit: report.PriceLimit,
		Violations: report.Lines(),
	}
}

// Sort orders for Query.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// DefaultLimit caps Query results when no limit is set.
const DefaultLimit = 100

// Query filters records. Zero values match everything.
type Query struct {
	StartTime *time.Time `json:"start_time,omitempty"` // Inclusive
	EndTime   *time.Time `json:"end_time,omitempty"`   // Inclusive

	SessionID string   `json:"session_id,omitempty"`
	ModelName string   `json:"model_name,omitempty"`
	Valid     *bool    `json:"valid,omitempty"`
	IDs       []string `json:"ids,omitempty"`

	Limit     int    `json:"limit,omitempty"`      // Max records, DefaultLimit when 0
	Offset    int    `json:"offset,omitempty"`     // Skip N records
	SortOrder string `json:"sort_order,omitempty"` // By RecordedAt, default desc
}

// Storage persists validation records. Implementations are safe for
// concurrent use.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Query returns records matching the filters, newest first unless
	// SortOrder is SortAscending.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the filters. Limit and
	// Offset are ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the filters and returns how many were
	// removed. Limit and Offset are ignored.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases backend resources.
	Close() error
}
