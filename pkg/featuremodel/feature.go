package featuremodel

// RootID is the ID reserved for the root feature of every model.
const RootID int64 = 1

// Slot sentinels. A slot list is either exactly [Forbidden], exactly
// [AnyPhysical], or a list of feature IDs whose physical descendants may
// attach in that direction.
const (
	// Forbidden marks a slot in which nothing may be placed.
	Forbidden int64 = -1

	// AnyPhysical marks a slot that accepts every physical feature.
	AnyPhysical int64 = 0
)

// Feature is a single node of the feature tree.
//
// Children are owned by their parent through Features. ParentID is a derived
// back-reference filled in during indexing and is only used for lookups.
type Feature struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	IsMandatory       bool   `json:"isMandatory"`
	HasOrSubfeatures  bool   `json:"hasOrSubfeatures"`
	HasXorSubfeatures bool   `json:"hasXorSubfeatures"`
	IsMaterial        bool   `json:"isMaterial"`
	IsPhysical        bool   `json:"isPhysical"`

	RequiringDependencyFrom []int64 `json:"requiringDependencyFrom,omitempty"`
	RequiringDependencyTo   []int64 `json:"requiringDependencyTo,omitempty"`
	ExcludingDependency     []int64 `json:"excludingDependency,omitempty"`

	Features []*Feature `json:"features"`

	// ParentID is 0 for the root.
	ParentID int64 `json:"parentId,omitempty"`

	Material *MaterialData `json:"material,omitempty"`
	Metadata *Metadata     `json:"metadata,omitempty"`
}

// Metadata describes a physical, placeable part.
type Metadata struct {
	Brand         string  `json:"brand"`
	ModelFilename string  `json:"modelFilename"`
	Price         float64 `json:"price"`
	LeftSlot      []int64 `json:"leftSlot"`
	RightSlot     []int64 `json:"rightSlot"`
	UpperSlot     []int64 `json:"upperSlot"`
}

// MaterialData describes a selectable surface finish.
type MaterialData struct {
	TextureFilename string  `json:"textureFilename"`
	Price           float64 `json:"price"`
}

// Placeable reports whether the feature is a physical part that can be
// instantiated in the world.
func (f *Feature) Placeable() bool {
	return f.IsPhysical && f.Metadata != nil
}

// HasMaterial reports whether the feature is a material carrying material data.
func (f *Feature) HasMaterial() bool {
	return f.IsMaterial && f.Material != nil
}

// IsRoot reports whether the feature is the model root.
func (f *Feature) IsRoot() bool {
	return f.ID == RootID
}

// Requires reports whether placing f requires the feature with the given ID.
func (f *Feature) Requires(id int64) bool {
	return containsID(f.RequiringDependencyTo, id)
}

// Excludes reports whether f is declared mutually exclusive with id.
func (f *Feature) Excludes(id int64) bool {
	return containsID(f.ExcludingDependency, id)
}

// Price returns the part price for physical features and the material
// price for material features. Features that are neither cost nothing.
func (f *Feature) Price() float64 {
	switch {
	case f.Metadata != nil:
		return f.Metadata.Price
	case f.Material != nil:
		return f.Material.Price
	default:
		return 0
	}
}

// IsForbidden reports whether the slot list is the Forbidden sentinel.
func IsForbidden(slot []int64) bool {
	return len(slot) == 1 && slot[0] == Forbidden
}

// IsAnyPhysical reports whether the slot list is the AnyPhysical sentinel.
func IsAnyPhysical(slot []int64) bool {
	return len(slot) == 1 && slot[0] == AnyPhysical
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
