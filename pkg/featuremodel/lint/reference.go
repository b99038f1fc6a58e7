package lint

import (
	"fmt"

	"mercator-hq/configurator/pkg/featuremodel"
)

// checkReferences reports ids that do not resolve to a feature.
func (c *checker) checkReferences(f *featuremodel.Feature) {
	if f.Metadata != nil {
		c.checkSlotReferences(f, "left", f.Metadata.LeftSlot)
		c.checkSlotReferences(f, "right", f.Metadata.RightSlot)
		c.checkSlotReferences(f, "upper", f.Metadata.UpperSlot)
	}

	c.checkIDs(f, "requiringDependencyTo", f.RequiringDependencyTo)
	c.checkIDs(f, "requiringDependencyFrom", f.RequiringDependencyFrom)
	c.checkIDs(f, "excludingDependency", f.ExcludingDependency)
}

func (c *checker) checkSlotReferences(f *featuremodel.Feature, direction string, slot []int64) {
	for _, id := range slot {
		if id <= featuremodel.AnyPhysical {
			continue
		}
		if !c.model.Has(id) {
			c.errorf(IssueTypeReference, f,
				fmt.Sprintf("%s slot references unknown feature %d", direction, id),
				SuggestFeatureID(id, c.model))
		}
	}
}

func (c *checker) checkIDs(f *featuremodel.Feature, field string, ids []int64) {
	for _, id := range ids {
		if !c.model.Has(id) {
			c.errorf(IssueTypeReference, f,
				fmt.Sprintf("%s references unknown feature %d", field, id),
				SuggestFeatureID(id, c.model))
		}
	}
}
