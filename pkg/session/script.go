package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mercator-hq/configurator/pkg/configuration"
	"mercator-hq/configurator/pkg/interpreter"
)

// Script is a recorded sequence of user actions, read from YAML:
//
//	price_limit: 500
//	material: 20
//	steps:
//	  - place: 11
//	  - place: 16
//	    above: 0
//	  - place: 10
//	    left_of: 0
//
// Anchors are indexes of earlier steps. The material is applied after every
// step has been placed.
type Script struct {
	PriceLimit *float64 `yaml:"price_limit"`
	Material   *int64   `yaml:"material"`
	Steps      []Step   `yaml:"steps"`
}

// Step places one feature, either free (first step) or next to an earlier step.
type Step struct {
	Place   int64 `yaml:"place"`
	RightOf *int  `yaml:"right_of"`
	LeftOf  *int  `yaml:"left_of"`
	Above   *int  `yaml:"above"`
}

// Anchor returns the anchoring step index and the slot to place into.
// ok is false for a free step.
func (st Step) Anchor() (index int, dir interpreter.Direction, ok bool) {
	switch {
	case st.RightOf != nil:
		return *st.RightOf, interpreter.Right, true
	case st.LeftOf != nil:
		return *st.LeftOf, interpreter.Left, true
	case st.Above != nil:
		return *st.Above, interpreter.Above, true
	}
	return 0, 0, false
}

func (st Step) anchors() int {
	n := 0
	for _, p := range []*int{st.RightOf, st.LeftOf, st.Above} {
		if p != nil {
			n++
		}
	}
	return n
}

// LoadScript reads and checks a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session script %q: %w", path, err)
	}
	return ParseScript(data)
}

// ParseScript decodes and checks a script. Unknown keys are rejected.
func ParseScript(data []byte) (*Script, error) {
	var sc Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, &ScriptError{Step: -1, Cause: err}
	}
	if err := sc.Check(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Check verifies the script shape without a model: only the first step may
// be free and anchors must point at earlier steps.
func (sc *Script) Check() error {
	if len(sc.Steps) == 0 {
		return &ScriptError{Step: -1, Cause: errors.New("no steps")}
	}
	for i, st := range sc.Steps {
		if st.Place <= 0 {
			return &ScriptError{Step: i, Cause: fmt.Errorf("invalid feature id %d", st.Place)}
		}
		if st.anchors() > 1 {
			return &ScriptError{Step: i, Cause: errors.New("more than one anchor")}
		}
		anchor, _, ok := st.Anchor()
		switch {
		case i == 0 && ok:
			return &ScriptError{Step: i, Cause: errors.New("first step cannot be anchored")}
		case i > 0 && !ok:
			return &ScriptError{Step: i, Cause: ErrFreePlacementClosed}
		case ok && (anchor < 0 || anchor >= i):
			return &ScriptError{Step: i, Cause: fmt.Errorf("anchor %d does not name an earlier step", anchor)}
		}
	}
	return nil
}

// Run replays the script on s and returns the placed instances in step order.
func (s *Session) Run(sc *Script) ([]*configuration.Instance, error) {
	if sc.PriceLimit != nil {
		if err := s.SetPriceLimit(*sc.PriceLimit); err != nil {
			return nil, &ScriptError{Step: -1, Cause: err}
		}
	}

	placed := make([]*configuration.Instance, 0, len(sc.Steps))
	for i, st := range sc.Steps {
		var (
			inst *configuration.Instance
			err  error
		)
		if anchor, dir, ok := st.Anchor(); ok {
			if anchor < 0 || anchor >= len(placed) {
				return placed, &ScriptError{Step: i, Cause: fmt.Errorf("anchor %d does not name an earlier step", anchor)}
			}
			inst, err = s.PlaceAt(placed[anchor].ID, dir, st.Place)
		} else {
			inst, err = s.PlaceFree(st.Place)
		}
		if err != nil {
			return placed, &ScriptError{Step: i, Cause: err}
		}
		placed = append(placed, inst)
	}

	if sc.Material != nil {
		if err := s.ApplyMaterial(*sc.Material); err != nil {
			return placed, &ScriptError{Step: -1, Cause: err}
		}
	}
	return placed, nil
}
