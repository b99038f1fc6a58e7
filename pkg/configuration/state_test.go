package configuration

import (
	"errors"
	"slices"
	"testing"

	"mercator-hq/configurator/pkg/featuremodel"
	"mercator-hq/configurator/pkg/interpreter"
)

func part(id int64, name string, price float64) *featuremodel.Feature {
	return &featuremodel.Feature{
		ID:         id,
		Name:       name,
		IsPhysical: true,
		Metadata: &featuremodel.Metadata{
			Price:     price,
			LeftSlot:  []int64{featuremodel.AnyPhysical},
			RightSlot: []int64{featuremodel.AnyPhysical},
			UpperSlot: []int64{featuremodel.AnyPhysical},
		},
	}
}

func finish(id int64, price float64) *featuremodel.Feature {
	return &featuremodel.Feature{
		ID:         id,
		Name:       "Finish",
		IsMaterial: true,
		Material:   &featuremodel.MaterialData{TextureFilename: "finish.png", Price: price},
	}
}

func TestState_Place(t *testing.T) {
	s := NewState()

	a, err := s.Place(part(10, "A", 100))
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if a.ID == "" || a.FeatureID != 10 || a.Name != "A" || a.Price != 100 {
		t.Errorf("Place() = %+v", a)
	}

	got, err := s.Instance(a.ID)
	if err != nil || got != a {
		t.Errorf("Instance(%s) = %v, %v", a.ID, got, err)
	}
	if _, err := s.Instance("missing"); !errors.Is(err, ErrUnknownInstance) {
		t.Errorf("Instance(missing) error = %v, want ErrUnknownInstance", err)
	}

	group := &featuremodel.Feature{ID: 2, Name: "Group"}
	if _, err := s.Place(group); !errors.Is(err, ErrNotPhysical) {
		t.Errorf("Place(group) error = %v, want ErrNotPhysical", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestState_PlaceAt_Links(t *testing.T) {
	s := NewState()
	root, _ := s.Place(part(10, "A", 100))

	right, err := s.PlaceAt(root, interpreter.Right, part(11, "B", 50))
	if err != nil {
		t.Fatalf("PlaceAt(right) error = %v", err)
	}
	top, err := s.PlaceAt(root, interpreter.Above, part(16, "C", 20))
	if err != nil {
		t.Fatalf("PlaceAt(above) error = %v", err)
	}

	if root.Neighbour(interpreter.Right) != right || right.Neighbour(interpreter.Left) != root {
		t.Error("left/right link is not reciprocal")
	}
	if root.Neighbour(interpreter.Above) != top {
		t.Error("upper link not set on anchor")
	}
	for _, dir := range []interpreter.Direction{interpreter.Left, interpreter.Right, interpreter.Above} {
		if top.SlotOccupied(dir) {
			t.Errorf("instance placed above has %s neighbour", dir)
		}
	}

	if got := root.NeighbourFeatureID(interpreter.Right); got != 11 {
		t.Errorf("NeighbourFeatureID(right) = %d, want 11", got)
	}
	if got := root.NeighbourFeatureID(interpreter.Left); got != NoNeighbour {
		t.Errorf("NeighbourFeatureID(left) = %d, want NoNeighbour", got)
	}

	if _, err := s.PlaceAt(root, interpreter.Right, part(12, "D", 1)); !errors.Is(err, ErrSlotOccupied) {
		t.Errorf("PlaceAt(occupied) error = %v, want ErrSlotOccupied", err)
	}
	if _, err := s.PlaceAt(&Instance{ID: "stray"}, interpreter.Left, part(12, "D", 1)); !errors.Is(err, ErrUnknownInstance) {
		t.Errorf("PlaceAt(stray) error = %v, want ErrUnknownInstance", err)
	}
	for _, dir := range []interpreter.Direction{interpreter.Direction(-1), interpreter.Direction(5)} {
		if _, err := s.PlaceAt(root, dir, part(12, "D", 1)); err == nil {
			t.Errorf("PlaceAt(%d) succeeded", dir)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestState_Queries(t *testing.T) {
	s := NewState()
	a1, _ := s.Place(part(10, "A", 1))
	b, _ := s.PlaceAt(a1, interpreter.Right, part(11, "B", 1))
	a2, _ := s.PlaceAt(b, interpreter.Right, part(10, "A", 1))

	if got := s.PlacedFeatureIDs(); !slices.Equal(got, []int64{10, 11}) {
		t.Errorf("PlacedFeatureIDs() = %v, want [10 11]", got)
	}
	if s.Find(10) != a1 {
		t.Error("Find(10) is not the first instance")
	}
	if s.Find(99) != nil || s.IsPlaced(99) {
		t.Error("Find(99) found an instance")
	}
	if got := s.InstancesOf(10); len(got) != 2 || got[1] != a2 {
		t.Errorf("InstancesOf(10) = %v", got)
	}

	instances := s.Instances()
	instances[0] = nil
	if s.Instances()[0] != a1 {
		t.Error("Instances() exposes internal slice")
	}
}

func TestState_Marks(t *testing.T) {
	s := NewState()
	a, _ := s.Place(part(10, "A", 1))
	b, _ := s.PlaceAt(a, interpreter.Left, part(11, "B", 1))

	b.MarkInvalid()
	if !b.Invalid() || a.Invalid() {
		t.Fatal("MarkInvalid() flagged the wrong instance")
	}
	if got := s.InvalidInstances(); len(got) != 1 || got[0] != b {
		t.Errorf("InvalidInstances() = %v", got)
	}

	s.ResetMarks()
	if b.Invalid() || len(s.InvalidInstances()) != 0 {
		t.Error("ResetMarks() left marks behind")
	}
}

func TestState_PriceLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   float64
		want    float64
		wantErr bool
	}{
		{name: "positive", limit: 250, want: 250},
		{name: "unlimited sentinel", limit: -1, want: Unlimited},
		{name: "below sentinel", limit: -42, want: Unlimited},
		{name: "zero", limit: 0, wantErr: true},
		{name: "between sentinel and zero", limit: -0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			err := s.SetPriceLimit(tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPriceLimit) {
					t.Errorf("SetPriceLimit(%v) error = %v, want ErrInvalidPriceLimit", tt.limit, err)
				}
				if s.PriceLimit() != Unlimited {
					t.Errorf("rejected limit changed state to %v", s.PriceLimit())
				}
				return
			}
			if err != nil {
				t.Fatalf("SetPriceLimit(%v) error = %v", tt.limit, err)
			}
			if s.PriceLimit() != tt.want {
				t.Errorf("PriceLimit() = %v, want %v", s.PriceLimit(), tt.want)
			}
		})
	}
}

func TestState_Materials(t *testing.T) {
	s := NewState()
	a, _ := s.Place(part(10, "A", 100))
	_, _ = s.PlaceAt(a, interpreter.Right, part(11, "B", 50))

	if err := s.ApplyMaterial(finish(20, 25)); err != nil {
		t.Fatalf("ApplyMaterial() error = %v", err)
	}
	if got := s.Total(); got != 200 {
		t.Errorf("Total() after walnut = %v, want 200", got)
	}

	// Replacing the material swaps the price per instance instead of stacking it.
	if err := s.ApplyMaterial(finish(21, 15)); err != nil {
		t.Fatalf("ApplyMaterial() error = %v", err)
	}
	if got := s.Total(); got != 180 {
		t.Errorf("Total() after lacquer = %v, want 180", got)
	}
	if s.Material().ID != 21 || a.Material().ID != 21 {
		t.Error("Material() not updated")
	}

	// Later placements are not finished retroactively.
	late, _ := s.PlaceAt(a, interpreter.Above, part(16, "C", 20))
	if late.Material() != nil {
		t.Error("material applied to an instance placed afterwards")
	}
	if got := s.Total(); got != 200 {
		t.Errorf("Total() = %v, want 200", got)
	}

	s.ClearMaterial()
	if got := s.Total(); got != 170 {
		t.Errorf("Total() after clear = %v, want 170", got)
	}
	if s.Material() != nil || a.Material() != nil {
		t.Error("ClearMaterial() left a material behind")
	}

	if err := s.ApplyMaterial(part(10, "A", 1)); !errors.Is(err, ErrNotMaterial) {
		t.Errorf("ApplyMaterial(part) error = %v, want ErrNotMaterial", err)
	}
}

func TestState_PriceStatus(t *testing.T) {
	s := NewState()
	_, _ = s.Place(part(10, "A", 120))

	unlimited := s.PriceStatus(0.8)
	if !unlimited.Allowed || unlimited.Limit != Unlimited || unlimited.Used != 120 {
		t.Errorf("unlimited status = %+v", unlimited)
	}

	if err := s.SetPriceLimit(100); err != nil {
		t.Fatal(err)
	}
	over := s.PriceStatus(0.8)
	if over.Allowed || over.Overage != 20 || over.Remaining != 0 || !over.AlertTriggered {
		t.Errorf("over status = %+v", over)
	}

	if err := s.SetPriceLimit(200); err != nil {
		t.Fatal(err)
	}
	under := s.PriceStatus(0.8)
	if !under.Allowed || under.Remaining != 80 || under.Overage != 0 || under.AlertTriggered {
		t.Errorf("under status = %+v", under)
	}
	if under.Percentage != 0.6 {
		t.Errorf("Percentage = %v, want 0.6", under.Percentage)
	}
	if s.PriceStatus(0).AlertTriggered {
		t.Error("zero threshold triggered an alert")
	}
}
