package history

import (
	"slices"
	"testing"

	"mercator-hq/configurator/pkg/validation"
)

func TestNewRecord(t *testing.T) {
	report := &validation.Report{
		Valid: false,
		Violations: []validation.Violation{
			{Kind: validation.KindRequires, Message: "Mirror requires Hinged Door."},
		},
		Total:      147,
		PriceLimit: 200,
	}

	r := NewRecord("session-1", "Wardrobe", 4, report)

	if r.ID == "" || r.RecordedAt.IsZero() {
		t.Errorf("record missing identity: %+v", r)
	}
	if r.SessionID != "session-1" || r.ModelName != "Wardrobe" || r.Instances != 4 {
		t.Errorf("record = %+v", r)
	}
	if r.Valid || r.Total != 147 || r.PriceLimit != 200 {
		t.Errorf("record = %+v", r)
	}
	if !slices.Equal(r.Violations, []string{"Mirror requires Hinged Door."}) {
		t.Errorf("Violations = %q", r.Violations)
	}

	if other := NewRecord("session-1", "Wardrobe", 4, report); other.ID == r.ID {
		t.Error("record IDs are not unique")
	}
}
