package editor

import (
	"context"
	"errors"
	"strings"

	"seraphmap/internal/app/maps"
	"seraphmap/internal/app/mapio"
	"seraphmap/internal/app/ports"
	"seraphmap/internal/domain/building"
	"seraphmap/internal/domain/tilemap"
)

var (
	ErrInvalidRequest = errors.New("invalid editor request")
	ErrMapTooLarge    = errors.New("map dimensions exceed limit")
)

const MaxDimension = 1024

var DefaultLayers = []string{"ground", "terrain", "buildings", "decorations", "treetops"}

type Service struct {
	Sessions      *Registry
	Metrics       ports.EditMetrics
	SaveUC        maps.SaveUseCase
	LoadUC        maps.LoadUseCase
	DefaultLayers []string
	HistoryLimit  int
	TileSize      int
}

func (s Service) Create(_ context.Context, req CreateRequest) (CreateResponse, error) {
	if s.Sessions == nil {
		return CreateResponse{}, ErrInvalidRequest
	}
	grid, err := s.newGrid(req.Width, req.Height, req.Layers)
	if err != nil {
		return CreateResponse{}, err
	}
	ws := NewWorkspace(grid, s.HistoryLimit)
	id, err := s.Sessions.Create(ws)
	if err != nil {
		return CreateResponse{}, err
	}
	return CreateResponse{SessionID: id, View: viewOf(&Handle{Workspace: ws}, nil)}, nil
}

func (s Service) Close(_ context.Context, req SessionRequest) error {
	if err := s.validSession(req.SessionID); err != nil {
		return err
	}
	return s.Sessions.Delete(req.SessionID)
}

func (s Service) NewMap(_ context.Context, req NewMapRequest) (View, error) {
	var out View
	err := s.do(req.SessionID, func(h *Handle) error {
		grid, err := s.newGrid(req.Width, req.Height, req.Layers)
		if err != nil {
			return err
		}
		h.Workspace.Replace(grid, nil)
		h.MapName, h.Version = "", 0
		out = viewOf(h, nil)
		return nil
	})
	return out, err
}

func (s Service) View(_ context.Context, req ViewRequest) (View, error) {
	var out View
	err := s.do(req.SessionID, func(h *Handle) error {
		if req.Target != nil {
			if _, err := h.Workspace.Session(*req.Target); err != nil {
				return err
			}
		}
		out = viewOf(h, req.Target)
		return nil
	})
	return out, err
}

func (s Service) SetTarget(_ context.Context, req TargetRequest) (View, error) {
	var out View
	err := s.do(req.SessionID, func(h *Handle) error {
		if err := h.Workspace.SetActive(req.Target); err != nil {
			return err
		}
		out = viewOf(h, nil)
		return nil
	})
	return out, err
}

func (s Service) BeginStroke(_ context.Context, req StrokeRequest) (StrokeResponse, error) {
	var out StrokeResponse
	err := s.do(req.SessionID, func(h *Handle) error {
		sess, _ := h.Workspace.Active()
		// a stroke left open by a lost pointer-up is committed here
		if sess.InStroke() && sess.EndStroke() {
			s.recordStroke()
		}
		sess.BeginStroke(req.Layer)
		out = StrokeResponse{State: stateOf(h.Workspace)}
		return nil
	})
	return out, err
}

func (s Service) EndStroke(_ context.Context, req SessionRequest) (StrokeResponse, error) {
	var out StrokeResponse
	err := s.do(req.SessionID, func(h *Handle) error {
		sess, _ := h.Workspace.Active()
		committed := sess.EndStroke()
		if committed {
			s.recordStroke()
		}
		out = StrokeResponse{Committed: committed, State: stateOf(h.Workspace)}
		return nil
	})
	return out, err
}

func (s Service) CancelStroke(_ context.Context, req SessionRequest) (EditResponse, error) {
	return s.edit(req.SessionID, ports.EditCancel, func(sess *Session) (tilemap.MapDelta, bool, error) {
		d, ok := sess.CancelStroke()
		return d, ok, nil
	})
}

func (s Service) Paint(_ context.Context, req PaintRequest) (EditResponse, error) {
	return s.edit(req.SessionID, ports.EditPaint, func(sess *Session) (tilemap.MapDelta, bool, error) {
		d, err := sess.PaintBatch(req.Layer, req.Cells)
		return d, true, err
	})
}

func (s Service) Stamp(_ context.Context, req StampRequest) (EditResponse, error) {
	if req.Stamp.Width <= 0 {
		return EditResponse{}, ErrInvalidRequest
	}
	return s.edit(req.SessionID, ports.EditStamp, func(sess *Session) (tilemap.MapDelta, bool, error) {
		d, err := sess.Stamp(req.Layer, req.X, req.Y, req.Stamp)
		return d, true, err
	})
}

func (s Service) Fill(_ context.Context, req FillRequest) (EditResponse, error) {
	return s.edit(req.SessionID, ports.EditFill, func(sess *Session) (tilemap.MapDelta, bool, error) {
		return sess.Fill(req.Layer, req.X, req.Y, req.GID), true, nil
	})
}

func (s Service) Undo(_ context.Context, req SessionRequest) (EditResponse, error) {
	return s.edit(req.SessionID, ports.EditUndo, func(sess *Session) (tilemap.MapDelta, bool, error) {
		d, ok := sess.Undo()
		return d, ok, nil
	})
}

func (s Service) Redo(_ context.Context, req SessionRequest) (EditResponse, error) {
	return s.edit(req.SessionID, ports.EditRedo, func(sess *Session) (tilemap.MapDelta, bool, error) {
		d, ok := sess.Redo()
		return d, ok, nil
	})
}

func (s Service) AddBuilding(_ context.Context, req BuildingRequest) (BuildingView, error) {
	var out BuildingView
	err := s.do(req.SessionID, func(h *Handle) error {
		b, err := h.Workspace.AddBuilding(strings.TrimSpace(req.ID), req.Name, req.Zone)
		if err != nil {
			return err
		}
		out = buildingView(b)
		return nil
	})
	return out, err
}

func (s Service) RemoveBuilding(_ context.Context, req RemoveBuildingRequest) (View, error) {
	var out View
	err := s.do(req.SessionID, func(h *Handle) error {
		if err := h.Workspace.RemoveBuilding(req.BuildingID); err != nil {
			return err
		}
		out = viewOf(h, nil)
		return nil
	})
	return out, err
}

func (s Service) Locate(_ context.Context, req LocateRequest) (LocateResponse, error) {
	var out LocateResponse
	err := s.do(req.SessionID, func(h *Handle) error {
		b, col, row, ok := h.Workspace.BuildingAt(req.X, req.Y)
		if ok {
			out = LocateResponse{Found: true, BuildingID: b.ID, Col: col, Row: row}
		}
		return nil
	})
	return out, err
}

func (s Service) AddFloor(_ context.Context, req FloorRequest) (FloorResponse, error) {
	var out FloorResponse
	err := s.do(req.SessionID, func(h *Handle) error {
		layers := req.Layers
		if len(layers) == 0 {
			layers = s.layers()
		}
		idx, err := h.Workspace.AddFloor(req.BuildingID, req.Name, layers...)
		if err != nil {
			return err
		}
		out = FloorResponse{BuildingID: req.BuildingID, Floor: idx}
		return nil
	})
	return out, err
}

func (s Service) RemoveFloor(_ context.Context, req RemoveFloorRequest) (View, error) {
	var out View
	err := s.do(req.SessionID, func(h *Handle) error {
		if err := h.Workspace.RemoveFloor(req.BuildingID, req.Floor); err != nil {
			return err
		}
		out = viewOf(h, nil)
		return nil
	})
	return out, err
}

func (s Service) Save(ctx context.Context, req SaveRequest) (maps.SaveResponse, error) {
	name := strings.TrimSpace(req.MapName)
	if name == "" {
		return maps.SaveResponse{}, ErrInvalidRequest
	}
	var out maps.SaveResponse
	err := s.do(req.SessionID, func(h *Handle) error {
		ws := h.Workspace
		ws.CommitStrokes()
		var expected int64
		if h.MapName == name {
			expected = h.Version
		}
		resp, err := s.SaveUC.Execute(ctx, maps.SaveRequest{
			Name:            name,
			Document:        mapio.Encode(ws.Map().Grid(), ws.Buildings(), s.tileSize()),
			ExpectedVersion: expected,
		})
		if err != nil {
			return err
		}
		h.MapName, h.Version = resp.Name, resp.Version
		out = resp
		return nil
	})
	return out, err
}

func (s Service) Load(ctx context.Context, req LoadRequest) (View, error) {
	var out View
	err := s.do(req.SessionID, func(h *Handle) error {
		resp, err := s.LoadUC.Execute(ctx, maps.LoadRequest{Name: req.MapName})
		if err != nil {
			return err
		}
		grid, buildings, err := mapio.Decode(resp.Document)
		if err != nil {
			return err
		}
		h.Workspace.Replace(grid, buildings)
		h.MapName, h.Version = resp.Name, resp.Version
		out = viewOf(h, nil)
		return nil
	})
	return out, err
}

func (s Service) do(id string, fn func(h *Handle) error) error {
	if err := s.validSession(id); err != nil {
		return err
	}
	return s.Sessions.Do(id, fn)
}

func (s Service) validSession(id string) error {
	if s.Sessions == nil || strings.TrimSpace(id) == "" {
		return ErrInvalidRequest
	}
	return nil
}

func (s Service) edit(id string, kind ports.EditKind, fn func(sess *Session) (tilemap.MapDelta, bool, error)) (EditResponse, error) {
	var out EditResponse
	err := s.do(id, func(h *Handle) error {
		sess, _ := h.Workspace.Active()
		d, ok, err := fn(sess)
		if err != nil {
			return err
		}
		applied := ok && !d.Empty()
		s.recordEdit(kind, applied, len(d.Changes))
		out = EditResponse{
			Applied: applied,
			Delta:   deltaView(sess.Grid(), d),
			State:   stateOf(h.Workspace),
		}
		return nil
	})
	return out, err
}

func (s Service) newGrid(width, height int, layers []string) (*tilemap.Grid, error) {
	if width > MaxDimension || height > MaxDimension {
		return nil, ErrMapTooLarge
	}
	if len(layers) == 0 {
		layers = s.layers()
	}
	grid, err := tilemap.NewGrid(width, height, layers...)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	return grid, nil
}

func (s Service) layers() []string {
	if len(s.DefaultLayers) > 0 {
		return s.DefaultLayers
	}
	return DefaultLayers
}

func (s Service) tileSize() int {
	if s.TileSize > 0 {
		return s.TileSize
	}
	return 16
}

func (s Service) recordEdit(kind ports.EditKind, applied bool, cells int) {
	if s.Metrics == nil {
		return
	}
	if applied {
		s.Metrics.RecordEdit(kind, cells)
		return
	}
	s.Metrics.RecordNoop(kind)
}

func (s Service) recordStroke() {
	if s.Metrics != nil {
		s.Metrics.RecordStrokeCommitted()
	}
}

func stateOf(ws *Workspace) State {
	sess, target := ws.Active()
	st := State{
		Target:   target,
		CanUndo:  sess.CanUndo(),
		CanRedo:  sess.CanRedo(),
		InStroke: sess.InStroke(),
	}
	if layer, ok := sess.StrokeLayer(); ok {
		st.StrokeLayer = &layer
	}
	return st
}

func deltaView(g *tilemap.Grid, d tilemap.MapDelta) DeltaView {
	out := DeltaView{Layer: d.LayerIndex, Cells: []CellView{}}
	seen := make(map[tilemap.Point]bool, len(d.Changes))
	for _, c := range d.Changes {
		p := tilemap.Point{X: c.X, Y: c.Y}
		if seen[p] {
			continue
		}
		seen[p] = true
		out.Cells = append(out.Cells, CellView{X: c.X, Y: c.Y, GID: g.Top(d.LayerIndex, c.X, c.Y)})
	}
	return out
}

func viewOf(h *Handle, target *Target) View {
	ws := h.Workspace
	sess, _ := ws.Active()
	if target != nil {
		if t, err := ws.Session(*target); err == nil {
			sess = t
		}
	}
	g := sess.Grid()
	out := View{
		Width:     g.Width(),
		Height:    g.Height(),
		MapName:   h.MapName,
		Version:   h.Version,
		State:     stateOf(ws),
		Buildings: []BuildingView{},
	}
	for i, name := range g.LayerNames() {
		out.Layers = append(out.Layers, LayerView{Name: name, Data: g.Tops(i)})
	}
	for _, b := range ws.Buildings() {
		out.Buildings = append(out.Buildings, buildingView(b))
	}
	return out
}

func buildingView(b *building.Building) BuildingView {
	out := BuildingView{ID: b.ID, Name: b.Name, Zone: b.Zone, Floors: []string{}}
	for _, f := range b.Floors {
		out.Floors = append(out.Floors, f.Name)
	}
	return out
}
