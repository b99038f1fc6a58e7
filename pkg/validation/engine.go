package validation

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"mercator-hq/configurator/pkg/configuration"
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/interpreter"
)

// Engine validates configurations against one feature model.
type Engine struct {
	interp *interpreter.Interpreter
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine over interp.
func NewEngine(interp *interpreter.Interpreter, opts ...Option) *Engine {
	e := &Engine{
		interp: interp,
		logger: slog.Default().With("component", "validation"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run carries the per-validation lookups.
type run struct {
	state  *configuration.State
	placed map[int64]bool
	report *Report
}

// Validate runs every check against state and returns the report. Offending
// instances are marked invalid; existing marks are left untouched.
func (e *Engine) Validate(state *configuration.State) (*Report, error) {
	r := &run{
		state:  state,
		placed: make(map[int64]bool),
		report: &Report{
			Valid:      true,
			Violations: make([]Violation, 0),
			Total:      state.Total(),
			PriceLimit: state.PriceLimit(),
		},
	}
	for _, id := range state.PlacedFeatureIDs() {
		r.placed[id] = true
	}

	checks := []struct {
		name string
		fn   func(*run) error
	}{
		{"mandatory", e.checkMandatory},
		{"xor", e.checkXor},
		{"requires", e.checkRequires},
		{"excludes", e.checkExcludes},
		{"price", e.checkPrice},
	}
	for _, check := range checks {
		if err := check.fn(r); err != nil {
			return nil, fmt.Errorf("%s check: %w", check.name, err)
		}
	}

	e.logger.Debug("configuration validated",
		"instances", state.Len(),
		"valid", r.report.Valid,
		"violations", len(r.report.Violations),
	)
	return r.report, nil
}

// represented returns the placed physical features below featureID.
func (e *Engine) represented(r *run, featureID int64) ([]*featuremodel.Feature, error) {
	subs, err := e.interp.GetPhysicalSubfeatures(featureID)
	if err != nil {
		return nil, err
	}
	var out []*featuremodel.Feature
	for _, f := range subs {
		if r.placed[f.ID] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (e *Engine) checkMandatory(r *run) error {
	for _, m := range e.interp.GetMandatoryFeatures() {
		placed, err := e.represented(r, m.ID)
		if err != nil {
			return err
		}
		if len(placed) > 0 {
			continue
		}
		r.report.add(Violation{
			Kind:       KindMandatory,
			Message:    fmt.Sprintf("Mandatory feature '%s' is not represented.", m.Name),
			FeatureIDs: []int64{m.ID},
		})
	}
	return nil
}

func (e *Engine) checkXor(r *run) error {
	for _, x := range e.interp.GetXorFeatures() {
		var names []string
		var ids []int64
		var placed [][]*featuremodel.Feature

		for _, child := range x.Features {
			subtree, err := e.represented(r, child.ID)
			if err != nil {
				return err
			}
			if len(subtree) == 0 {
				continue
			}
			names = append(names, child.Name)
			ids = append(ids, child.ID)
			placed = append(placed, subtree)
		}

		if len(placed) < 2 {
			continue
		}

		var marked []string
		for _, subtree := range placed[:2] {
			for _, f := range subtree {
				marked = append(marked, markAll(r.state, f.ID)...)
			}
		}
		r.report.add(Violation{
			Kind:        KindXor,
			Message:     fmt.Sprintf("%s cannot be selected together with %s.", names[0], names[1]),
			FeatureIDs:  ids[:2],
			InstanceIDs: marked,
		})
	}
	return nil
}

func (e *Engine) checkRequires(r *run) error {
	for _, id := range r.state.PlacedFeatureIDs() {
		f, err := e.interp.GetFeature(id)
		if err != nil {
			return err
		}
		for _, req := range f.RequiringDependencyTo {
			if r.placed[req] {
				continue
			}
			required, err := e.interp.GetFeature(req)
			if err != nil {
				return fmt.Errorf("requirement of feature %d: %w", f.ID, err)
			}
			r.report.add(Violation{
				Kind:        KindRequires,
				Message:     fmt.Sprintf("%s requires %s.", f.Name, required.Name),
				FeatureIDs:  []int64{f.ID, required.ID},
				InstanceIDs: markAll(r.state, f.ID),
			})
		}
	}
	return nil
}

func (e *Engine) checkExcludes(r *run) error {
	checked := make(map[int64]bool)
	for _, id := range r.state.PlacedFeatureIDs() {
		checked[id] = true

		f, err := e.interp.GetFeature(id)
		if err != nil {
			return err
		}
		for _, ex := range f.ExcludingDependency {
			if !r.placed[ex] || checked[ex] {
				continue
			}
			excluded, err := e.interp.GetFeature(ex)
			if err != nil {
				return fmt.Errorf("exclusion of feature %d: %w", f.ID, err)
			}
			marked := markAll(r.state, f.ID)
			marked = append(marked, markAll(r.state, ex)...)
			r.report.add(Violation{
				Kind:        KindExcludes,
				Message:     fmt.Sprintf("%s and %s are mutually exclusive.", f.Name, excluded.Name),
				FeatureIDs:  []int64{f.ID, excluded.ID},
				InstanceIDs: marked,
			})
		}
	}
	return nil
}

func (e *Engine) checkPrice(r *run) error {
	limit := r.state.PriceLimit()
	total := r.state.Total()
	if limit <= configuration.Unlimited || total <= limit {
		return nil
	}

	r.report.add(Violation{
		Kind:    KindPrice,
		Message: fmt.Sprintf("Current product price is %s above the set limit.", formatAmount(total-limit)),
	})
	return nil
}

// markAll marks every instance of featureID invalid and returns their ids.
func markAll(state *configuration.State, featureID int64) []string {
	var ids []string
	for _, inst := range state.InstancesOf(featureID) {
		inst.MarkInvalid()
		ids = append(ids, inst.ID)
	}
	return ids
}

// formatAmount rounds to cents and drops trailing zeros, so whole amounts
// render without a fraction.
func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
