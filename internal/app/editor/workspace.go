package editor

import (
	"errors"

	"seraphmap/internal/domain/building"
	"seraphmap/internal/domain/tilemap"
)

var (
	ErrBuildingNotFound  = errors.New("building not found")
	ErrDuplicateBuilding = errors.New("building already exists")
	ErrStrokeOpen        = errors.New("stroke in progress")
)

type Target struct {
	BuildingID string `json:"building_id,omitempty"`
	Floor      int    `json:"floor"`
}

func (t Target) IsMap() bool { return t.BuildingID == "" }

type Workspace struct {
	historyLimit int
	mapSession   *Session
	buildings    []*building.Building
	floors       map[*building.Floor]*Session
	active       Target
}

func NewWorkspace(grid *tilemap.Grid, historyLimit int) *Workspace {
	return &Workspace{
		historyLimit: historyLimit,
		mapSession:   NewSession(grid, historyLimit),
		floors:       map[*building.Floor]*Session{},
	}
}

func (w *Workspace) Map() *Session { return w.mapSession }

func (w *Workspace) Buildings() []*building.Building {
	out := make([]*building.Building, len(w.buildings))
	copy(out, w.buildings)
	return out
}

func (w *Workspace) Building(id string) (*building.Building, error) {
	for _, b := range w.buildings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBuildingNotFound
}

func (w *Workspace) BuildingAt(x, y int) (*building.Building, int, int, bool) {
	for _, b := range w.buildings {
		if col, row, ok := b.Zone.Local(x, y); ok {
			return b, col, row, true
		}
	}
	return nil, 0, 0, false
}

func (w *Workspace) AddBuilding(id, name string, zone building.Zone) (*building.Building, error) {
	b := &building.Building{ID: id, Name: name, Zone: zone}
	grid := w.mapSession.Grid()
	if err := b.Validate(grid.Width(), grid.Height()); err != nil {
		return nil, err
	}
	if _, err := w.Building(id); err == nil {
		return nil, ErrDuplicateBuilding
	}
	w.buildings = append(w.buildings, b)
	return b, nil
}

func (w *Workspace) RemoveBuilding(id string) error {
	for i, b := range w.buildings {
		if b.ID != id {
			continue
		}
		for _, f := range b.Floors {
			delete(w.floors, f)
		}
		w.buildings = append(w.buildings[:i], w.buildings[i+1:]...)
		if w.active.BuildingID == id {
			w.active = Target{}
		}
		return nil
	}
	return ErrBuildingNotFound
}

func (w *Workspace) AddFloor(buildingID, name string, layerNames ...string) (int, error) {
	b, err := w.Building(buildingID)
	if err != nil {
		return 0, err
	}
	return b.AddFloor(name, layerNames...)
}

func (w *Workspace) RemoveFloor(buildingID string, index int) error {
	b, err := w.Building(buildingID)
	if err != nil {
		return err
	}
	f, err := b.Floor(index)
	if err != nil {
		return err
	}
	if err := b.RemoveFloor(index); err != nil {
		return err
	}
	delete(w.floors, f)
	if w.active.BuildingID == buildingID {
		switch {
		case w.active.Floor == index:
			w.active = Target{}
		case w.active.Floor > index:
			w.active.Floor--
		}
	}
	return nil
}

func (w *Workspace) Session(t Target) (*Session, error) {
	if t.IsMap() {
		return w.mapSession, nil
	}
	b, err := w.Building(t.BuildingID)
	if err != nil {
		return nil, err
	}
	f, err := b.Floor(t.Floor)
	if err != nil {
		return nil, err
	}
	s, ok := w.floors[f]
	if !ok {
		s = NewSession(f.Grid, w.historyLimit)
		w.floors[f] = s
	}
	return s, nil
}

func (w *Workspace) SetActive(t Target) error {
	if cur, _ := w.Active(); cur.InStroke() {
		return ErrStrokeOpen
	}
	if _, err := w.Session(t); err != nil {
		return err
	}
	w.active = t
	return nil
}

func (w *Workspace) Active() (*Session, Target) {
	s, err := w.Session(w.active)
	if err != nil {
		w.active = Target{}
		return w.mapSession, w.active
	}
	return s, w.active
}

func (w *Workspace) CommitStrokes() {
	w.mapSession.EndStroke()
	for _, s := range w.floors {
		s.EndStroke()
	}
}

func (w *Workspace) Replace(grid *tilemap.Grid, buildings []*building.Building) {
	w.mapSession.Replace(grid)
	w.buildings = buildings
	w.floors = map[*building.Floor]*Session{}
	w.active = Target{}
}
