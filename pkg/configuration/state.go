package configuration

import (
	"fmt"

	"github.com/google/uuid"

	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/interpreter"
)

// State is the ordered set of placed instances plus pricing.
type State struct {
	instances []*Instance
	byID      map[string]*Instance
	limit     float64
	material  *featuremodel.Feature
}

// NewState creates an empty state without a price ceiling.
func NewState() *State {
	return &State{
		byID:  make(map[string]*Instance),
		limit: Unlimited,
	}
}

// Len returns the number of placed instances.
func (s *State) Len() int {
	return len(s.instances)
}

// Instances returns the placed instances in placement order.
func (s *State) Instances() []*Instance {
	out := make([]*Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

// Instance returns the instance with the given id.
func (s *State) Instance(id string) (*Instance, error) {
	inst, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("instance %s: %w", id, ErrUnknownInstance)
	}
	return inst, nil
}

// PlacedFeatureIDs returns the distinct placed feature ids in order of
// first placement.
func (s *State) PlacedFeatureIDs() []int64 {
	seen := make(map[int64]struct{}, len(s.instances))
	ids := make([]int64, 0, len(s.instances))
	for _, inst := range s.instances {
		if _, ok := seen[inst.FeatureID]; ok {
			continue
		}
		seen[inst.FeatureID] = struct{}{}
		ids = append(ids, inst.FeatureID)
	}
	return ids
}

// IsPlaced reports whether at least one instance of featureID exists.
func (s *State) IsPlaced(featureID int64) bool {
	return s.Find(featureID) != nil
}

// Find returns the first placed instance of featureID, or nil.
func (s *State) Find(featureID int64) *Instance {
	for _, inst := range s.instances {
		if inst.FeatureID == featureID {
			return inst
		}
	}
	return nil
}

// InstancesOf returns every placed instance of featureID.
func (s *State) InstancesOf(featureID int64) []*Instance {
	var out []*Instance
	for _, inst := range s.instances {
		if inst.FeatureID == featureID {
			out = append(out, inst)
		}
	}
	return out
}

// ResetMarks clears the invalid mark on every instance.
func (s *State) ResetMarks() {
	for _, inst := range s.instances {
		inst.invalid = false
	}
}

// InvalidInstances returns the instances currently marked invalid.
func (s *State) InvalidInstances() []*Instance {
	var out []*Instance
	for _, inst := range s.instances {
		if inst.invalid {
			out = append(out, inst)
		}
	}
	return out
}

// Total returns the running price of the configuration.
func (s *State) Total() float64 {
	var total float64
	for _, inst := range s.instances {
		total += inst.TotalPrice()
	}
	return total
}

// PriceLimit returns the ceiling, or Unlimited.
func (s *State) PriceLimit() float64 {
	return s.limit
}

// SetPriceLimit sets the ceiling. Values <= -1 remove it.
func (s *State) SetPriceLimit(limit float64) error {
	normalized, err := normalizeLimit(limit)
	if err != nil {
		return fmt.Errorf("set price limit %v: %w", limit, err)
	}
	s.limit = normalized
	return nil
}

// Place adds a free-standing instance of f.
func (s *State) Place(f *featuremodel.Feature) (*Instance, error) {
	if f.Metadata == nil {
		return nil, fmt.Errorf("feature %d (%s): %w", f.ID, f.Name, ErrNotPhysical)
	}

	inst := &Instance{
		ID:        uuid.New().String(),
		FeatureID: f.ID,
		Name:      f.Name,
		Price:     f.Metadata.Price,
	}
	s.instances = append(s.instances, inst)
	s.byID[inst.ID] = inst
	return inst, nil
}

// PlaceAt adds an instance of f in slot dir of anchor. Left and right links
// are reciprocal; an instance placed above does not point back down.
func (s *State) PlaceAt(anchor *Instance, dir interpreter.Direction, f *featuremodel.Feature) (*Instance, error) {
	if dir < interpreter.Left || dir > interpreter.Above {
		return nil, fmt.Errorf("unknown direction %s", dir)
	}
	if _, ok := s.byID[anchor.ID]; !ok {
		return nil, fmt.Errorf("instance %s: %w", anchor.ID, ErrUnknownInstance)
	}
	if anchor.SlotOccupied(dir) {
		return nil, fmt.Errorf("%s slot of instance %s: %w", dir, anchor.ID, ErrSlotOccupied)
	}

	inst, err := s.Place(f)
	if err != nil {
		return nil, err
	}

	anchor.neighbours[dir] = inst
	if dir != interpreter.Above {
		inst.neighbours[dir.Opposite()] = anchor
	}
	return inst, nil
}

// Material returns the most recently applied material, or nil.
func (s *State) Material() *featuremodel.Feature {
	return s.material
}

// ApplyMaterial applies m to every instance placed so far, replacing any
// previously applied material.
func (s *State) ApplyMaterial(m *featuremodel.Feature) error {
	if !m.HasMaterial() {
		return fmt.Errorf("feature %d (%s): %w", m.ID, m.Name, ErrNotMaterial)
	}
	for _, inst := range s.instances {
		inst.material = m
	}
	s.material = m
	return nil
}

// ClearMaterial removes the material from every instance.
func (s *State) ClearMaterial() {
	for _, inst := range s.instances {
		inst.material = nil
	}
	s.material = nil
}
