package configuration

import (
	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/interpreter"
)

// NoNeighbour is reported by NeighbourFeatureID for an empty slot.
const NoNeighbour int64 = -1

// Instance is one placed copy of a physical feature.
type Instance struct {
	// ID uniquely identifies the instance within a session (UUID).
	ID string

	// FeatureID is the feature this instance was created from.
	FeatureID int64

	// Name is the feature name, kept for reports.
	Name string

	// Price is the metadata price of the feature.
	Price float64

	neighbours [3]*Instance
	material   *featuremodel.Feature
	invalid    bool
}

// MarkInvalid flags the instance as violating a constraint.
func (i *Instance) MarkInvalid() {
	i.invalid = true
}

// Invalid reports whether the last validation flagged this instance.
func (i *Instance) Invalid() bool {
	return i.invalid
}

// Neighbour returns the instance linked in dir, or nil.
func (i *Instance) Neighbour(dir interpreter.Direction) *Instance {
	if dir < interpreter.Left || dir > interpreter.Above {
		return nil
	}
	return i.neighbours[dir]
}

// NeighbourFeatureID returns the feature id of the neighbour in dir, or
// NoNeighbour.
func (i *Instance) NeighbourFeatureID(dir interpreter.Direction) int64 {
	if n := i.Neighbour(dir); n != nil {
		return n.FeatureID
	}
	return NoNeighbour
}

// SlotOccupied reports whether dir already has a neighbour.
func (i *Instance) SlotOccupied(dir interpreter.Direction) bool {
	return i.Neighbour(dir) != nil
}

// Material returns the material applied to this instance, or nil.
func (i *Instance) Material() *featuremodel.Feature {
	return i.material
}

// TotalPrice is the metadata price plus the applied material price.
func (i *Instance) TotalPrice() float64 {
	if i.material != nil && i.material.Material != nil {
		return i.Price + i.material.Material.Price
	}
	return i.Price
}
