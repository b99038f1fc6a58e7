package validation

import (
	"testing"

	"mercator-hq/configurator/pkg/configuration"
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/interpreter"
)

// scenarioModel covers every constraint kind:
//
//	1 Root
//	├── 2 M (mandatory) ── 10 P
//	├── 3 X (xor) ── 4 A ── 11 PA
//	│             ├── 5 B ── 12 PB
//	│             └── 6 C ── 13 PC
//	├── 14 R (requires 15)
//	├── 15 S
//	├── 16 E1 (excludes 17)
//	└── 17 E2 (excludes 16)
const scenarioModel = `{
  "name": "scenarios",
  "features": [{
    "id": 1, "name": "Root",
    "features": [
      {"id": 2, "name": "M", "isMandatory": true, "features": [
        {"id": 10, "name": "P", "isPhysical": true, "metadata": {"price": 10, "leftSlot": [0], "rightSlot": [0], "upperSlot": [0]}}
      ]},
      {"id": 3, "name": "X", "hasXorSubfeatures": true, "features": [
        {"id": 4, "name": "A", "features": [
          {"id": 11, "name": "PA", "isPhysical": true, "metadata": {"price": 10, "leftSlot": [0], "rightSlot": [0], "upperSlot": [0]}}
        ]},
        {"id": 5, "name": "B", "features": [
          {"id": 12, "name": "PB", "isPhysical": true, "metadata": {"price": 10, "leftSlot": [0], "rightSlot": [0], "upperSlot": [0]}}
        ]},
        {"id": 6, "name": "C", "features": [
          {"id": 13, "name": "PC", "isPhysical": true, "metadata": {"price": 10, "leftSlot": [0], "rightSlot": [0], "upperSlot": [0]}}
        ]}
      ]},
      {"id": 14, "name": "R", "isPhysical": true, "requiringDependencyTo": [15], "metadata": {"price": 10, "leftSlot": [0], "rightSlot": [0], "upperSlot": [0]}},
      {"id": 15, "name": "S", "isPhysical": true, "metadata": {"price": 10, "leftSlot": [0], "rightSlot": [0], "upperSlot": [0]}},
      {"id": 16, "name": "E1", "isPhysical": true, "excludingDependency": [17], "metadata": {"price": 10, "leftSlot": [0], "rightSlot": [0], "upperSlot": [0]}},
      {"id": 17, "name": "E2", "isPhysical": true, "excludingDependency": [16], "metadata": {"price": 10, "leftSlot": [0], "rightSlot": [0], "upperSlot": [0]}}
    ]
  }]
}`

type fixture struct {
	model  *featuremodel.Model
	engine *Engine
}

func newFixture(t *testing.T, doc string) *fixture {
	t.Helper()
	model, err := featuremodel.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return &fixture{model: model, engine: NewEngine(interpreter.New(model))}
}

// place builds a state with one free-standing instance per id, chained to
// the right of each other.
func (f *fixture) place(t *testing.T, ids ...int64) *configuration.State {
	t.Helper()
	state := configuration.NewState()

	var prev *configuration.Instance
	for _, id := range ids {
		feature, err := f.model.Lookup(id)
		if err != nil {
			t.Fatalf("Lookup(%d) error = %v", id, err)
		}
		var inst *configuration.Instance
		if prev == nil {
			inst, err = state.Place(feature)
		} else {
			inst, err = state.PlaceAt(prev, interpreter.Right, feature)
		}
		if err != nil {
			t.Fatalf("place %d: %v", id, err)
		}
		prev = inst
	}
	return state
}

func (f *fixture) validate(t *testing.T, state *configuration.State) *Report {
	t.Helper()
	report, err := f.engine.Validate(state)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return report
}
