package interpreter

import (
	"errors"
	"fmt"
	"slices"

	"mercator-hq/configurator/pkg/featuremodel"
)

// ErrNotPlaceable is returned for slot queries on a feature without metadata.
var ErrNotPlaceable = errors.New("feature is not placeable")

// Observer receives candidate query results. The metrics collector
// implements it.
type Observer interface {
	ObserveCandidates(direction string, count int)
}

// Interpreter wraps one feature model.
type Interpreter struct {
	model    *featuremodel.Model
	observer Observer
}

// New creates an interpreter over model.
func New(model *featuremodel.Model) *Interpreter {
	return &Interpreter{model: model}
}

// WithObserver attaches an observer for candidate queries.
func (i *Interpreter) WithObserver(o Observer) *Interpreter {
	i.observer = o
	return i
}

// Model returns the underlying feature model.
func (i *Interpreter) Model() *featuremodel.Model {
	return i.model
}

// GetFeature returns the feature with the given id.
func (i *Interpreter) GetFeature(id int64) (*featuremodel.Feature, error) {
	return i.model.Lookup(id)
}

// GetPhysicalSubfeatures returns the physical features reachable from rootID
// in breadth-first order. Forbidden yields nothing, AnyPhysical yields every
// placeable feature and a physical feature yields itself.
func (i *Interpreter) GetPhysicalSubfeatures(rootID int64) ([]*featuremodel.Feature, error) {
	switch rootID {
	case featuremodel.Forbidden:
		return nil, nil
	case featuremodel.AnyPhysical:
		return i.GetAllPlaceable()
	}

	root, err := i.model.Lookup(rootID)
	if err != nil {
		return nil, err
	}
	if root.Placeable() {
		return []*featuremodel.Feature{root}, nil
	}

	var result []*featuremodel.Feature
	queue := []*featuremodel.Feature{root}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		if f.Placeable() {
			result = append(result, f)
			continue
		}
		queue = append(queue, f.Features...)
	}
	return result, nil
}

// GetAllPlaceable returns every physical feature of the model.
func (i *Interpreter) GetAllPlaceable() ([]*featuremodel.Feature, error) {
	return i.GetPhysicalSubfeatures(featuremodel.RootID)
}

// GetAllMaterials returns the material features below the root that carry
// material data, in breadth-first order.
func (i *Interpreter) GetAllMaterials() []*featuremodel.Feature {
	root := i.model.Root()
	if root == nil {
		return nil
	}

	var result []*featuremodel.Feature
	queue := slices.Clone(root.Features)
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		if f.HasMaterial() {
			result = append(result, f)
		}
		queue = append(queue, f.Features...)
	}
	return result
}

// GetAllowed returns the features that may be placed in the given slot of
// featureID, de-duplicated by id in first-seen order.
func (i *Interpreter) GetAllowed(featureID int64, dir Direction) ([]*featuremodel.Feature, error) {
	f, err := i.model.Lookup(featureID)
	if err != nil {
		return nil, err
	}
	if f.Metadata == nil {
		return nil, fmt.Errorf("feature %d (%s): %w", f.ID, f.Name, ErrNotPlaceable)
	}

	var slot []int64
	switch dir {
	case Left:
		slot = f.Metadata.LeftSlot
	case Right:
		slot = f.Metadata.RightSlot
	case Above:
		slot = f.Metadata.UpperSlot
	default:
		return nil, fmt.Errorf("unknown direction %s", dir)
	}

	seen := make(map[int64]struct{})
	result := make([]*featuremodel.Feature, 0)
	for _, id := range slot {
		subs, err := i.GetPhysicalSubfeatures(id)
		if err != nil {
			return nil, fmt.Errorf("%s slot of feature %d: %w", dir, f.ID, err)
		}
		for _, sub := range subs {
			if _, dup := seen[sub.ID]; dup {
				continue
			}
			seen[sub.ID] = struct{}{}
			result = append(result, sub)
		}
	}

	if i.observer != nil {
		i.observer.ObserveCandidates(dir.String(), len(result))
	}
	return result, nil
}

// GetAllowedLeft returns the features allowed to the left of featureID.
func (i *Interpreter) GetAllowedLeft(featureID int64) ([]*featuremodel.Feature, error) {
	return i.GetAllowed(featureID, Left)
}

// GetAllowedRight returns the features allowed to the right of featureID.
func (i *Interpreter) GetAllowedRight(featureID int64) ([]*featuremodel.Feature, error) {
	return i.GetAllowed(featureID, Right)
}

// GetAllowedAbove returns the features allowed on top of featureID.
func (i *Interpreter) GetAllowedAbove(featureID int64) ([]*featuremodel.Feature, error) {
	return i.GetAllowed(featureID, Above)
}

// GetMandatoryFeatures returns all mandatory features in ascending id order.
func (i *Interpreter) GetMandatoryFeatures() []*featuremodel.Feature {
	return i.filter(func(f *featuremodel.Feature) bool { return f.IsMandatory })
}

// GetXorFeatures returns all features with XOR subfeatures in ascending id order.
func (i *Interpreter) GetXorFeatures() []*featuremodel.Feature {
	return i.filter(func(f *featuremodel.Feature) bool { return f.HasXorSubfeatures })
}

func (i *Interpreter) filter(keep func(*featuremodel.Feature) bool) []*featuremodel.Feature {
	var result []*featuremodel.Feature
	for _, f := range i.model.All() {
		if keep(f) {
			result = append(result, f)
		}
	}
	return result
}
