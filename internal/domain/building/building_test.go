package building

import (
	"errors"
	"math"
	"testing"
)

func TestZoneValidate(t *testing.T) {
	cases := []struct {
		name string
		zone Zone
		ok   bool
	}{
		{name: "inside", zone: Zone{X: 1, Y: 1, Width: 3, Height: 2}, ok: true},
		{name: "touches edge", zone: Zone{X: 7, Y: 8, Width: 3, Height: 2}, ok: true},
		{name: "overflows", zone: Zone{X: 8, Y: 0, Width: 3, Height: 2}},
		{name: "negative origin", zone: Zone{X: -1, Y: 0, Width: 1, Height: 1}},
		{name: "empty", zone: Zone{X: 0, Y: 0, Width: 0, Height: 1}},
		{name: "width wraps past max int", zone: Zone{X: 1, Y: 0, Width: math.MaxInt, Height: 1}},
		{name: "height wraps past max int", zone: Zone{X: 0, Y: 2, Width: 1, Height: math.MaxInt - 1}},
		{name: "huge origin", zone: Zone{X: math.MaxInt - 1<<40, Y: 0, Width: 1 << 40, Height: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.zone.Validate(10, 10)
			if tc.ok && err != nil {
				t.Fatalf("expected valid zone, got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidZone) {
				t.Fatalf("expected ErrInvalidZone, got %v", err)
			}
		})
	}
}

func TestZoneLocal(t *testing.T) {
	z := Zone{X: 4, Y: 2, Width: 3, Height: 3}
	col, row, ok := z.Local(6, 4)
	if !ok || col != 2 || row != 2 {
		t.Fatalf("Local(6,4)=(%d,%d,%v) want (2,2,true)", col, row, ok)
	}
	if col, row, ok := z.Local(4, 2); !ok || col != 0 || row != 0 {
		t.Fatalf("Local(4,2)=(%d,%d,%v) want (0,0,true)", col, row, ok)
	}
	for _, p := range [][2]int{{7, 4}, {3, 2}, {4, 1}, {6, 5}} {
		if _, _, ok := z.Local(p[0], p[1]); ok {
			t.Fatalf("expected %v outside zone to be rejected", p)
		}
	}
}

func TestBuildingFloors(t *testing.T) {
	b := &Building{ID: "tavern", Zone: Zone{X: 0, Y: 0, Width: 5, Height: 4}}
	idx, err := b.AddFloor("ground", "floor", "furniture")
	if err != nil {
		t.Fatalf("add floor: %v", err)
	}
	f, err := b.Floor(idx)
	if err != nil {
		t.Fatalf("floor: %v", err)
	}
	if f.Grid.Width() != 5 || f.Grid.Height() != 4 || f.Grid.LayerCount() != 2 {
		t.Fatalf("floor grid not sized to zone: %dx%d layers=%d", f.Grid.Width(), f.Grid.Height(), f.Grid.LayerCount())
	}
	if err := b.RemoveFloor(idx); err != nil {
		t.Fatalf("remove floor: %v", err)
	}
	if _, err := b.Floor(idx); !errors.Is(err, ErrFloorNotFound) {
		t.Fatalf("expected ErrFloorNotFound, got %v", err)
	}
}

func TestBuildingValidate(t *testing.T) {
	b := &Building{ID: " ", Zone: Zone{Width: 1, Height: 1}}
	if err := b.Validate(4, 4); !errors.Is(err, ErrInvalidBuilding) {
		t.Fatalf("expected ErrInvalidBuilding, got %v", err)
	}
}
