package watch

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/featuremodel/lint"
)

// Recorder receives model load outcomes. The metrics collector implements it.
type Recorder interface {
	RecordModelLoad(model string, features int, err error)
	RecordLint(model string, issues *lint.IssueList)
}

// ReloadFunc is called after a new model has been swapped in.
type ReloadFunc func(model *featuremodel.Model, issues *lint.IssueList)

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithParser sets the parser used for every load.
func WithParser(p *featuremodel.Parser) ReloaderOption {
	return func(r *Reloader) {
		r.parser = p
	}
}

// WithLinter sets the linter used to gate every load.
func WithLinter(l *lint.Linter) ReloaderOption {
	return func(r *Reloader) {
		r.linter = l
	}
}

// WithOnReload registers a callback for accepted models.
func WithOnReload(fn ReloadFunc) ReloaderOption {
	return func(r *Reloader) {
		r.onReload = fn
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(rec Recorder) ReloaderOption {
	return func(r *Reloader) {
		r.recorder = rec
	}
}

// Reloader holds the current model of a file and replaces it on Load.
type Reloader struct {
	path     string
	parser   *featuremodel.Parser
	linter   *lint.Linter
	onReload ReloadFunc
	recorder Recorder
	logger   *slog.Logger

	current atomic.Pointer[featuremodel.Model]

	// loadMu serializes loads so callbacks observe models in load order.
	loadMu sync.Mutex
}

// NewReloader creates a reloader for the model file at path. Nothing is
// loaded until Load is called.
func NewReloader(path string, opts ...ReloaderOption) *Reloader {
	r := &Reloader{
		path:   path,
		parser: featuremodel.NewParser(),
		linter: lint.NewLinter(),
		logger: slog.Default().With("component", "watch"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Current returns the last accepted model, or nil before the first
// successful Load.
func (r *Reloader) Current() *featuremodel.Model {
	return r.current.Load()
}

// Load parses and lints the file. On success the model becomes current and
// the reload callback runs; on failure the current model is kept.
func (r *Reloader) Load() error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	model, err := r.parser.ParseFile(r.path)
	if err != nil {
		if r.recorder != nil {
			r.recorder.RecordModelLoad("", 0, err)
		}
		return fmt.Errorf("load model: %w", err)
	}

	issues := r.linter.Lint(model)
	if r.recorder != nil {
		r.recorder.RecordLint(model.Name, issues)
	}
	if err := issues.ToError(); err != nil {
		if r.recorder != nil {
			r.recorder.RecordModelLoad(model.Name, 0, err)
		}
		return fmt.Errorf("lint model %q: %w", model.Name, err)
	}

	previous := r.current.Swap(model)
	if r.recorder != nil {
		r.recorder.RecordModelLoad(model.Name, model.Len(), nil)
	}
	r.logger.Info("model loaded",
		"model", model.Name,
		"features", model.Len(),
		"warnings", len(issues.Warnings()),
		"reload", previous != nil,
	)

	if r.onReload != nil {
		r.onReload(model, issues)
	}
	return nil
}
