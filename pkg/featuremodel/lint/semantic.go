package lint

import (
	"fmt"

	"mercator-hq/configurator/pkg/featuremodel"
)

// checkSemantics looks for constraint combinations that can never be
// satisfied or that behave differently from what the author likely meant.
// References are known to resolve at this point.
func (c *checker) checkSemantics(f *featuremodel.Feature) {
	if f.Requires(f.ID) {
		c.errorf(IssueTypeSemantic, f, "feature requires itself", "")
	}
	if f.Excludes(f.ID) {
		c.errorf(IssueTypeSemantic, f, "feature excludes itself", "")
	}

	for _, id := range f.RequiringDependencyTo {
		if id != f.ID && f.Excludes(id) {
			c.errorf(IssueTypeSemantic, f,
				fmt.Sprintf("feature both requires and excludes feature %d", id), "")
		}
	}

	for _, id := range f.ExcludingDependency {
		other, _ := c.model.Lookup(id)
		if other != nil && id != f.ID && !other.Excludes(f.ID) {
			c.warnf(IssueTypeSemantic, f,
				fmt.Sprintf("excludes %q but the reverse dependency is not declared", other.Name),
				fmt.Sprintf("Add %d to excludingDependency of feature %d", f.ID, id))
		}
	}

	for _, id := range f.RequiringDependencyFrom {
		other, _ := c.model.Lookup(id)
		if other != nil && !other.Requires(f.ID) {
			c.warnf(IssueTypeSemantic, f,
				fmt.Sprintf("lists %q in requiringDependencyFrom but %q does not require it", other.Name, other.Name),
				fmt.Sprintf("Add %d to requiringDependencyTo of feature %d", f.ID, id))
		}
	}

	if f.HasXorSubfeatures && len(f.Features) < 2 {
		c.warnf(IssueTypeSemantic, f,
			fmt.Sprintf("XOR group has %d alternative(s)", len(f.Features)), "")
	}

	if f.IsMandatory && !f.IsMaterial {
		physical, err := c.interp.GetPhysicalSubfeatures(f.ID)
		if err == nil && len(physical) == 0 {
			c.warnf(IssueTypeSemantic, f,
				"mandatory feature has no placeable descendants and can never be satisfied", "")
		}
	}

	if f.Metadata != nil {
		c.checkSlotReachable(f, "left", f.Metadata.LeftSlot)
		c.checkSlotReachable(f, "right", f.Metadata.RightSlot)
		c.checkSlotReachable(f, "upper", f.Metadata.UpperSlot)
	}
}

// checkSlotReachable warns about slot entries that resolve to no physical
// feature, which silently narrows the candidate list.
func (c *checker) checkSlotReachable(f *featuremodel.Feature, direction string, slot []int64) {
	if featuremodel.IsForbidden(slot) || featuremodel.IsAnyPhysical(slot) {
		return
	}
	for _, id := range slot {
		physical, err := c.interp.GetPhysicalSubfeatures(id)
		if err == nil && len(physical) == 0 {
			c.warnf(IssueTypeSemantic, f,
				fmt.Sprintf("%s slot entry %d has no placeable descendants", direction, id), "")
		}
	}
}
