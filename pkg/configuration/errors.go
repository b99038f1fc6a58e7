package configuration

import "errors"

var (
	// ErrUnknownInstance is returned when an instance id is not part of the state.
	ErrUnknownInstance = errors.New("unknown instance")

	// ErrSlotOccupied is returned when placing into a slot that already has a neighbour.
	ErrSlotOccupied = errors.New("slot already occupied")

	// ErrInvalidPriceLimit is returned for a ceiling that is neither positive nor Unlimited.
	ErrInvalidPriceLimit = errors.New("price limit must be positive or -1 for unlimited")

	// ErrNotMaterial is returned when applying a feature that carries no material data.
	ErrNotMaterial = errors.New("feature is not a material")

	// ErrNotPhysical is returned when instantiating a feature without metadata.
	ErrNotPhysical = errors.New("feature is not physical")
)
