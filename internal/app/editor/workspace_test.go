package editor

import (
	"errors"
	"math"
	"testing"

	"seraphmap/internal/domain/building"
	"seraphmap/internal/domain/tilemap"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	g, err := tilemap.NewGrid(10, 8, "ground", "buildings")
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	return NewWorkspace(g, 0)
}

func TestWorkspace_FloorGridsAreIndependent(t *testing.T) {
	ws := newTestWorkspace(t)
	if _, err := ws.AddBuilding("tavern", "Tavern", building.Zone{X: 2, Y: 2, Width: 4, Height: 3}); err != nil {
		t.Fatalf("add building: %v", err)
	}
	idx, err := ws.AddFloor("tavern", "ground floor", "floor", "furniture")
	if err != nil {
		t.Fatalf("add floor: %v", err)
	}
	target := Target{BuildingID: "tavern", Floor: idx}
	if err := ws.SetActive(target); err != nil {
		t.Fatalf("set active: %v", err)
	}
	sess, got := ws.Active()
	if got != target {
		t.Fatalf("active target mismatch: got=%+v want=%+v", got, target)
	}
	if sess.Grid().Width() != 4 || sess.Grid().Height() != 3 {
		t.Fatalf("floor grid not sized to zone: %dx%d", sess.Grid().Width(), sess.Grid().Height())
	}

	sess.Paint(0, 0, 0, 12)
	if ws.Map().Grid().Top(0, 0, 0) != tilemap.Empty || ws.Map().Grid().Top(0, 2, 2) != tilemap.Empty {
		t.Fatalf("floor paint leaked into map grid")
	}
	if ws.Map().CanUndo() {
		t.Fatalf("floor edit entered map history")
	}
	if !sess.CanUndo() {
		t.Fatalf("expected floor edit in floor history")
	}
}

func TestWorkspace_SwitchRefusedDuringStroke(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.AddBuilding("hut", "", building.Zone{X: 0, Y: 0, Width: 2, Height: 2})
	ws.AddFloor("hut", "ground", "floor")

	ws.Map().BeginStroke(0)
	if err := ws.SetActive(Target{BuildingID: "hut"}); !errors.Is(err, ErrStrokeOpen) {
		t.Fatalf("expected ErrStrokeOpen, got %v", err)
	}
	ws.Map().EndStroke()
	if err := ws.SetActive(Target{BuildingID: "hut"}); err != nil {
		t.Fatalf("set active after stroke: %v", err)
	}
}

func TestWorkspace_RejectsBadBuildings(t *testing.T) {
	ws := newTestWorkspace(t)
	if _, err := ws.AddBuilding("a", "", building.Zone{X: 8, Y: 0, Width: 4, Height: 1}); !errors.Is(err, building.ErrInvalidZone) {
		t.Fatalf("expected ErrInvalidZone, got %v", err)
	}
	ws.AddBuilding("a", "", building.Zone{Width: 1, Height: 1})
	if _, err := ws.AddBuilding("a", "", building.Zone{Width: 1, Height: 1}); !errors.Is(err, ErrDuplicateBuilding) {
		t.Fatalf("expected ErrDuplicateBuilding, got %v", err)
	}
	if err := ws.SetActive(Target{BuildingID: "a", Floor: 0}); !errors.Is(err, building.ErrFloorNotFound) {
		t.Fatalf("expected ErrFloorNotFound, got %v", err)
	}
	if err := ws.SetActive(Target{BuildingID: "zzz"}); !errors.Is(err, ErrBuildingNotFound) {
		t.Fatalf("expected ErrBuildingNotFound, got %v", err)
	}
}

func TestWorkspace_RejectsOverflowingZoneBeforeAllocatingFloor(t *testing.T) {
	ws := newTestWorkspace(t)
	zones := []building.Zone{
		{X: 1, Y: 0, Width: math.MaxInt, Height: 1},
		{X: math.MaxInt - 1<<40, Y: 0, Width: 1 << 40, Height: 1},
	}
	for _, z := range zones {
		if _, err := ws.AddBuilding("huge", "", z); !errors.Is(err, building.ErrInvalidZone) {
			t.Fatalf("zone %+v: expected ErrInvalidZone, got %v", z, err)
		}
	}
	if _, err := ws.AddFloor("huge", "ground floor", "ground"); !errors.Is(err, ErrBuildingNotFound) {
		t.Fatalf("expected ErrBuildingNotFound, got %v", err)
	}
	if got := len(ws.Buildings()); got != 0 {
		t.Fatalf("buildings=%d want 0", got)
	}
}

func TestWorkspace_BuildingAtTranslatesToFloorCell(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.AddBuilding("mill", "Mill", building.Zone{X: 0, Y: 0, Width: 2, Height: 2})
	ws.AddBuilding("tavern", "Tavern", building.Zone{X: 5, Y: 3, Width: 4, Height: 3})

	b, col, row, ok := ws.BuildingAt(7, 4)
	if !ok || b.ID != "tavern" || col != 2 || row != 1 {
		t.Fatalf("BuildingAt(7,4) got=(%v,%d,%d,%v) want=(tavern,2,1,true)", b, col, row, ok)
	}
	if _, _, _, ok := ws.BuildingAt(4, 4); ok {
		t.Fatalf("expected open ground to have no building")
	}
}

func TestWorkspace_RemovingActiveFloorFallsBackToMap(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.AddBuilding("inn", "", building.Zone{Width: 3, Height: 3})
	ws.AddFloor("inn", "cellar", "floor")
	ws.AddFloor("inn", "ground", "floor")
	ws.AddFloor("inn", "attic", "floor")

	if err := ws.SetActive(Target{BuildingID: "inn", Floor: 2}); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := ws.RemoveFloor("inn", 0); err != nil {
		t.Fatalf("remove floor: %v", err)
	}
	if _, target := ws.Active(); target.Floor != 1 {
		t.Fatalf("expected active floor index to shift to 1, got %d", target.Floor)
	}
	if err := ws.RemoveFloor("inn", 1); err != nil {
		t.Fatalf("remove active floor: %v", err)
	}
	if _, target := ws.Active(); !target.IsMap() {
		t.Fatalf("expected map to become active, got %+v", target)
	}

	ws.SetActive(Target{BuildingID: "inn", Floor: 0})
	if err := ws.RemoveBuilding("inn"); err != nil {
		t.Fatalf("remove building: %v", err)
	}
	if _, target := ws.Active(); !target.IsMap() {
		t.Fatalf("expected map active after building removal, got %+v", target)
	}
	if len(ws.Buildings()) != 0 {
		t.Fatalf("building not removed")
	}
}

func TestWorkspace_ReplaceResetsEverything(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.Map().Paint(0, 0, 0, 1)
	ws.AddBuilding("inn", "", building.Zone{Width: 2, Height: 2})
	g, _ := tilemap.NewGrid(4, 4, "ground")
	ws.Replace(g, nil)
	if ws.Map().CanUndo() || len(ws.Buildings()) != 0 || ws.Map().Grid() != g {
		t.Fatalf("workspace not reset on replace")
	}
}
