package featuremodel

import (
	"errors"
	"testing"
)

func loadWardrobe(t *testing.T) *Model {
	t.Helper()
	model, err := NewParser().ParseFile(wardrobePath)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	return model
}

func TestModel_Lookup(t *testing.T) {
	model := loadWardrobe(t)

	f, err := model.Lookup(16)
	if err != nil {
		t.Fatalf("Lookup(16) failed: %v", err)
	}
	if f.Name != "Mirror" {
		t.Errorf("Name = %q, want %q", f.Name, "Mirror")
	}
	if !f.Requires(13) {
		t.Error("Mirror should require feature 13")
	}

	_, err = model.Lookup(999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup(999) error = %v, want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != 999 {
		t.Errorf("NotFoundError.ID = %v, want 999", nf)
	}
}

func TestModel_IndexSharesTree(t *testing.T) {
	model := loadWardrobe(t)

	frame, _ := model.Lookup(2)
	if frame != model.Root().Features[0] {
		t.Error("index entry and tree node should be the same feature")
	}
}

func TestModel_All_Ordered(t *testing.T) {
	model := loadWardrobe(t)

	all := model.All()
	if len(all) != model.Len() {
		t.Fatalf("len(All()) = %d, want %d", len(all), model.Len())
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("All() not sorted at %d: %d >= %d", i, all[i-1].ID, all[i].ID)
		}
	}
}

func TestModel_Walk(t *testing.T) {
	model := loadWardrobe(t)

	var visited []int64
	model.Walk(func(f *Feature) bool {
		visited = append(visited, f.ID)
		return len(visited) < 5
	})

	want := []int64{1, 2, 3, 7, 8}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %d, want %d", i, visited[i], want[i])
		}
	}
}

func TestFeature_Helpers(t *testing.T) {
	model := loadWardrobe(t)

	tests := []struct {
		id          int64
		placeable   bool
		hasMaterial bool
		price       float64
	}{
		{id: 1, placeable: false, hasMaterial: false, price: 0},
		{id: 10, placeable: true, hasMaterial: false, price: 100},
		{id: 20, placeable: false, hasMaterial: true, price: 25},
	}

	for _, tt := range tests {
		f, err := model.Lookup(tt.id)
		if err != nil {
			t.Fatalf("Lookup(%d) failed: %v", tt.id, err)
		}
		if f.Placeable() != tt.placeable {
			t.Errorf("feature %d Placeable() = %v, want %v", tt.id, f.Placeable(), tt.placeable)
		}
		if f.HasMaterial() != tt.hasMaterial {
			t.Errorf("feature %d HasMaterial() = %v, want %v", tt.id, f.HasMaterial(), tt.hasMaterial)
		}
		if f.Price() != tt.price {
			t.Errorf("feature %d Price() = %v, want %v", tt.id, f.Price(), tt.price)
		}
	}
}

func TestSlotSentinels(t *testing.T) {
	if !IsForbidden([]int64{Forbidden}) {
		t.Error("IsForbidden([-1]) = false, want true")
	}
	if IsForbidden([]int64{Forbidden, 3}) {
		t.Error("IsForbidden([-1 3]) = true, want false")
	}
	if !IsAnyPhysical([]int64{AnyPhysical}) {
		t.Error("IsAnyPhysical([0]) = false, want true")
	}
	if IsAnyPhysical(nil) {
		t.Error("IsAnyPhysical(nil) = true, want false")
	}
}
