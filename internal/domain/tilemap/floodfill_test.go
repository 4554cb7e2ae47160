package tilemap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFill_EmptyLayerCoversEveryCell(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	changes := g.Fill(0, 1, 1, 7)
	if got, want := len(changes), 16; got != want {
		t.Fatalf("change count mismatch: got=%d want=%d", got, want)
	}
	for _, c := range changes {
		if len(c.Old) != 0 || !c.New.Equal(CellStack{7}) {
			t.Fatalf("unexpected change at (%d,%d): old=%v new=%v", c.X, c.Y, c.Old, c.New)
		}
	}
	if again := g.Fill(0, 0, 0, 7); len(again) != 0 {
		t.Fatalf("expected no-op refill, got %d changes", len(again))
	}
}

func TestFloodFill_StaysInsideRegion(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	// vertical wall at x=2 splits the layer in two
	for y := 0; y < 5; y++ {
		g.Paint(0, 2, y, 9)
	}
	g.Paint(0, 0, 0, 1)
	g.Paint(0, 0, 0, 4) // stack [1 4]; top differs from seed top so not in region

	changes := FloodFill(g, 0, 1, 1, 6)
	for _, c := range changes {
		if c.X >= 2 {
			t.Fatalf("fill escaped region at (%d,%d)", c.X, c.Y)
		}
		if c.X == 0 && c.Y == 0 {
			t.Fatalf("fill touched cell with different top")
		}
	}
	if got, want := len(changes), 9; got != want {
		t.Fatalf("region size mismatch: got=%d want=%d", got, want)
	}
	if got := g.Top(0, 1, 1); got != Empty {
		t.Fatalf("FloodFill mutated the grid: top=%d", got)
	}
}

func TestFloodFill_ComparesTopOnly(t *testing.T) {
	g := newTestGrid(t, 2, 1)
	g.Paint(0, 0, 0, 1)
	g.Paint(0, 0, 0, 3)
	g.Paint(0, 1, 0, 3)
	changes := g.Fill(0, 0, 0, 5)
	if got, want := len(changes), 2; got != want {
		t.Fatalf("expected both cells with top 3 in region: got=%d", got)
	}
	if diff := cmp.Diff(CellStack{1, 3, 5}, g.Get(0, 0, 0)); diff != "" {
		t.Fatalf("stack mismatch:\n%s", diff)
	}
}

func TestFill_EraseRegionPops(t *testing.T) {
	g := newTestGrid(t, 3, 1)
	for x := 0; x < 3; x++ {
		g.Paint(0, x, 0, 2)
		g.Paint(0, x, 0, 5)
	}
	g.Fill(0, 1, 0, Empty)
	if diff := cmp.Diff([]GID{2, 2, 2}, g.Tops(0)); diff != "" {
		t.Fatalf("expected erase fill to reveal previous tiles:\n%s", diff)
	}
}

func TestFloodFill_OutOfRangeSeed(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	if got := FloodFill(g, 0, 5, 5, 1); got != nil {
		t.Fatalf("expected nil for out-of-range seed, got %v", got)
	}
}

func TestFloodFill_LargeRegionWithoutRecursion(t *testing.T) {
	g, err := NewGrid(512, 512, "ground")
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	if got, want := len(g.Fill(0, 0, 0, 1)), 512*512; got != want {
		t.Fatalf("change count mismatch: got=%d want=%d", got, want)
	}
}
