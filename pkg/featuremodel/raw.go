package featuremodel

// rawModel mirrors the JSON document before structural checks are applied.
type rawModel struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Features    []*rawFeature `json:"features"`
}

// rawFeature uses a pointer ID so a missing "id" can be told apart from 0.
type rawFeature struct {
	ID                      *int64        `json:"id"`
	Name                    string        `json:"name"`
	IsMandatory             bool          `json:"isMandatory"`
	HasOrSubfeatures        bool          `json:"hasOrSubfeatures"`
	HasXorSubfeatures       bool          `json:"hasXorSubfeatures"`
	IsMaterial              bool          `json:"isMaterial"`
	IsPhysical              bool          `json:"isPhysical"`
	RequiringDependencyFrom []int64       `json:"requiringDependencyFrom"`
	RequiringDependencyTo   []int64       `json:"requiringDependencyTo"`
	ExcludingDependency     []int64       `json:"excludingDependency"`
	Features                []*rawFeature `json:"features"`
	Material                *MaterialData `json:"material"`
	Metadata                *Metadata     `json:"metadata"`
}
