package lint

import (
	"fmt"

	"mercator-hq/configurator/pkg/featuremodel"
)

// checkStructure validates the shape of a single feature.
func (c *checker) checkStructure(f *featuremodel.Feature) {
	if f.IsPhysical && len(f.Features) > 0 {
		c.errorf(IssueTypeStructural, f,
			fmt.Sprintf("physical feature has %d subfeature(s)", len(f.Features)),
			"Physical features are leaves; move the subfeatures under a non-physical group")
	}

	switch {
	case f.IsPhysical && f.Metadata == nil:
		c.errorf(IssueTypeStructural, f, "physical feature has no metadata",
			"Add a 'metadata' object with brand, modelFilename, price and slot lists")
	case !f.IsPhysical && f.Metadata != nil:
		c.errorf(IssueTypeStructural, f, "non-physical feature carries metadata",
			"Set 'isPhysical: true' or remove 'metadata'")
	}

	switch {
	case f.IsMaterial && f.Material == nil:
		c.errorf(IssueTypeStructural, f, "material feature has no material data",
			"Add a 'material' object with textureFilename and price")
	case !f.IsMaterial && f.Material != nil:
		c.errorf(IssueTypeStructural, f, "non-material feature carries material data",
			"Set 'isMaterial: true' or remove 'material'")
	}

	if f.IsPhysical && f.IsMaterial {
		c.warnf(IssueTypeStructural, f, "feature is both physical and a material", "")
	}

	if f.Metadata != nil {
		if f.Metadata.Price < 0 {
			c.errorf(IssueTypeStructural, f, fmt.Sprintf("negative price %v", f.Metadata.Price), "")
		}
		c.checkSlot(f, "left", f.Metadata.LeftSlot)
		c.checkSlot(f, "right", f.Metadata.RightSlot)
		c.checkSlot(f, "upper", f.Metadata.UpperSlot)
	}
	if f.Material != nil && f.Material.Price < 0 {
		c.errorf(IssueTypeStructural, f, fmt.Sprintf("negative material price %v", f.Material.Price), "")
	}
}

// checkSlot enforces the sentinel rules: -1 and 0 only ever appear alone.
func (c *checker) checkSlot(f *featuremodel.Feature, direction string, slot []int64) {
	if len(slot) == 0 {
		c.errorf(IssueTypeStructural, f, fmt.Sprintf("%s slot list is empty", direction),
			"Use [-1] to forbid placement or [0] to allow any physical feature")
		return
	}

	for _, id := range slot {
		switch {
		case id < featuremodel.Forbidden:
			c.errorf(IssueTypeStructural, f, fmt.Sprintf("%s slot contains invalid id %d", direction, id), "")
		case (id == featuremodel.Forbidden || id == featuremodel.AnyPhysical) && len(slot) > 1:
			c.errorf(IssueTypeStructural, f,
				fmt.Sprintf("%s slot mixes sentinel %d with other entries", direction, id),
				"A sentinel must be the only entry of its slot list")
		}
	}
}
