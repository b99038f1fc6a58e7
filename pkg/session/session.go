package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"mercator-hq/configurator/pkg/configuration"
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/history"
	"mercator-hq/configurator/pkg/interpreter"
	"mercator-hq/configurator/pkg/validation"
)

// MaterialNone passed to ApplyMaterial removes the applied material.
const MaterialNone int64 = -1

// Recorder receives validation outcomes. The metrics collector implements it.
type Recorder interface {
	RecordValidation(model string, report *validation.Report, duration time.Duration)
	RecordHistoryStore(backend string, err error)
}

// Option configures a Session.
type Option func(*Session)

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithHistory stores every validation run in storage. backend labels the
// storage in metrics.
func WithHistory(backend string, storage history.Storage) Option {
	return func(s *Session) {
		s.historyBackend = backend
		s.history = storage
	}
}

// WithAlertThreshold sets the fraction of the price ceiling at which
// validation logs a price alert. 0 disables it.
func WithAlertThreshold(threshold float64) Option {
	return func(s *Session) {
		s.alertThreshold = threshold
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is one configuration under construction.
type Session struct {
	id     string
	interp *interpreter.Interpreter
	state  *configuration.State
	engine *validation.Engine

	recorder       Recorder
	history        history.Storage
	historyBackend string
	alertThreshold float64
	logger         *slog.Logger
}

// New starts an empty session over interp.
func New(interp *interpreter.Interpreter, opts ...Option) *Session {
	s := &Session{
		id:     uuid.New().String(),
		interp: interp,
		state:  configuration.NewState(),
		logger: slog.Default().With("component", "session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	s.engine = validation.NewEngine(interp, validation.WithLogger(s.logger))
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns the configuration state.
func (s *Session) State() *configuration.State {
	return s.state
}

// Interpreter returns the interpreter the session places against.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// FreeCandidates lists the features that may start the configuration.
func (s *Session) FreeCandidates() ([]*featuremodel.Feature, error) {
	if s.state.Len() > 0 {
		return nil, ErrFreePlacementClosed
	}
	return s.interp.GetAllPlaceable()
}

// Candidates lists the features that may be placed in slot dir of the given
// instance.
func (s *Session) Candidates(instanceID string, dir interpreter.Direction) ([]*featuremodel.Feature, error) {
	inst, err := s.state.Instance(instanceID)
	if err != nil {
		return nil, err
	}
	if inst.SlotOccupied(dir) {
		return nil, fmt.Errorf("%s slot of instance %s: %w", dir, instanceID, configuration.ErrSlotOccupied)
	}
	return s.interp.GetAllowed(inst.FeatureID, dir)
}

// PlaceFree starts the configuration with featureID.
func (s *Session) PlaceFree(featureID int64) (*configuration.Instance, error) {
	candidates, err := s.FreeCandidates()
	if err != nil {
		return nil, err
	}
	f, err := pick(candidates, featureID)
	if err != nil {
		return nil, err
	}

	inst, err := s.state.Place(f)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("placed feature", "feature", f.ID, "instance", inst.ID)
	return inst, nil
}

// PlaceAt places featureID in slot dir of the given instance.
func (s *Session) PlaceAt(instanceID string, dir interpreter.Direction, featureID int64) (*configuration.Instance, error) {
	candidates, err := s.Candidates(instanceID, dir)
	if err != nil {
		return nil, err
	}
	f, err := pick(candidates, featureID)
	if err != nil {
		return nil, fmt.Errorf("%s of instance %s: %w", dir, instanceID, err)
	}

	anchor, err := s.state.Instance(instanceID)
	if err != nil {
		return nil, err
	}
	inst, err := s.state.PlaceAt(anchor, dir, f)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("placed feature",
		"feature", f.ID,
		"instance", inst.ID,
		"anchor", instanceID,
		"direction", dir.String(),
	)
	return inst, nil
}

// ApplyMaterial applies the material feature to every placed instance.
// MaterialNone clears the current material.
func (s *Session) ApplyMaterial(materialID int64) error {
	if materialID == MaterialNone {
		s.state.ClearMaterial()
		return nil
	}
	m, err := s.interp.GetFeature(materialID)
	if err != nil {
		return fmt.Errorf("apply material: %w", err)
	}
	return s.state.ApplyMaterial(m)
}

// ClearMaterial removes the applied material.
func (s *Session) ClearMaterial() {
	s.state.ClearMaterial()
}

// SetPriceLimit sets the price ceiling. Values <= -1 remove it.
func (s *Session) SetPriceLimit(limit float64) error {
	return s.state.SetPriceLimit(limit)
}

// PriceStatus reports the price against the ceiling.
func (s *Session) PriceStatus() *configuration.PriceStatus {
	return s.state.PriceStatus(s.alertThreshold)
}

// Validate clears the invalid marks, checks every constraint and records
// the outcome. The report is returned even when recording to history fails.
func (s *Session) Validate(ctx context.Context) (*validation.Report, error) {
	s.state.ResetMarks()

	model := s.interp.Model().Name
	start := time.Now()
	report, err := s.engine.Validate(s.state)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	if s.recorder != nil {
		s.recorder.RecordValidation(model, report, elapsed)
	}

	s.logger.Info("configuration validated",
		"model", model,
		"valid", report.Valid,
		"violations", len(report.Violations),
		"total", report.Total,
		"duration", elapsed,
	)
	if status := s.PriceStatus(); status.AlertTriggered {
		s.logger.Warn("price approaching limit",
			"used", status.Used,
			"limit", status.Limit,
			"percentage", status.Percentage,
		)
	}

	if s.history == nil {
		return report, nil
	}
	record := history.NewRecord(s.id, model, s.state.Len(), report)
	err = s.history.Store(ctx, record)
	if s.recorder != nil {
		s.recorder.RecordHistoryStore(s.historyBackend, err)
	}
	if err != nil {
		return report, fmt.Errorf("record validation: %w", err)
	}
	return report, nil
}

func pick(candidates []*featuremodel.Feature, featureID int64) (*featuremodel.Feature, error) {
	i := slices.IndexFunc(candidates, func(f *featuremodel.Feature) bool {
		return f.ID == featureID
	})
	if i < 0 {
		return nil, fmt.Errorf("feature %d: %w", featureID, ErrNotAllowed)
	}
	return candidates[i], nil
}
