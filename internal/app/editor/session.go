package editor

import (
	"seraphmap/internal/domain/history"
	"seraphmap/internal/domain/tilemap"
)

type Session struct {
	grid *tilemap.Grid
	rec  history.Recorder
}

func NewSession(grid *tilemap.Grid, historyLimit int) *Session {
	s := &Session{grid: grid}
	s.rec.History.Limit = historyLimit
	return s
}

func (s *Session) Grid() *tilemap.Grid { return s.grid }
func (s *Session) InStroke() bool      { return s.rec.InStroke() }
func (s *Session) StrokeLayer() (int, bool) { return s.rec.StrokeLayer() }
func (s *Session) CanUndo() bool       { return s.rec.History.CanUndo() }
func (s *Session) CanRedo() bool       { return s.rec.History.CanRedo() }

func (s *Session) BeginStroke(layer int) {
	s.rec.BeginStroke(layer)
}

func (s *Session) EndStroke() bool {
	return s.rec.EndStroke()
}

func (s *Session) CancelStroke() (tilemap.MapDelta, bool) {
	d, ok := s.rec.CancelStroke()
	if !ok {
		return tilemap.MapDelta{}, false
	}
	d.Revert(s.grid)
	return d, true
}

func (s *Session) Paint(layer, x, y int, gid tilemap.GID) (tilemap.MapDelta, error) {
	return s.PaintBatch(layer, []tilemap.CellPaint{{X: x, Y: y, GID: gid}})
}

func (s *Session) PaintBatch(layer int, cells []tilemap.CellPaint) (tilemap.MapDelta, error) {
	if err := s.rec.Check(layer); err != nil {
		return tilemap.MapDelta{}, err
	}
	d := tilemap.MapDelta{LayerIndex: layer, Changes: s.grid.PaintBatch(layer, cells)}
	return d, s.rec.Record(d)
}

func (s *Session) Stamp(layer, x, y int, st tilemap.Stamp) (tilemap.MapDelta, error) {
	if err := s.rec.Check(layer); err != nil {
		return tilemap.MapDelta{}, err
	}
	d := tilemap.MapDelta{LayerIndex: layer, Changes: s.grid.PaintStamp(layer, x, y, st)}
	return d, s.rec.Record(d)
}

// Fill always lands in history as its own entry; an open stroke is committed
// first to keep entries in paint order.
func (s *Session) Fill(layer, x, y int, gid tilemap.GID) tilemap.MapDelta {
	s.rec.EndStroke()
	d := tilemap.MapDelta{LayerIndex: layer, Changes: s.grid.Fill(layer, x, y, gid)}
	s.rec.History.Push(d)
	return d
}

func (s *Session) Undo() (tilemap.MapDelta, bool) {
	s.rec.EndStroke()
	d, ok := s.rec.History.Undo()
	if ok {
		d.Revert(s.grid)
	}
	return d, ok
}

func (s *Session) Redo() (tilemap.MapDelta, bool) {
	s.rec.EndStroke()
	d, ok := s.rec.History.Redo()
	if ok {
		d.Replay(s.grid)
	}
	return d, ok
}

func (s *Session) Replace(grid *tilemap.Grid) {
	s.grid = grid
	s.rec.Reset()
}
