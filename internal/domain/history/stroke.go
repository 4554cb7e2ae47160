package history

import (
	"errors"

	"seraphmap/internal/domain/tilemap"
)

var ErrStrokeLayerMismatch = errors.New("mutation layer does not match open stroke")

type Recorder struct {
	History Manager

	pending *tilemap.MapDelta
}

func (r *Recorder) BeginStroke(layer int) {
	r.EndStroke()
	r.pending = &tilemap.MapDelta{LayerIndex: layer}
}

func (r *Recorder) EndStroke() bool {
	if r.pending == nil {
		return false
	}
	d := *r.pending
	r.pending = nil
	if d.Empty() {
		return false
	}
	r.History.Push(d)
	return true
}

func (r *Recorder) CancelStroke() (tilemap.MapDelta, bool) {
	if r.pending == nil {
		return tilemap.MapDelta{}, false
	}
	d := *r.pending
	r.pending = nil
	return d, true
}

func (r *Recorder) InStroke() bool {
	return r.pending != nil
}

func (r *Recorder) StrokeLayer() (int, bool) {
	if r.pending == nil {
		return 0, false
	}
	return r.pending.LayerIndex, true
}

func (r *Recorder) Check(layer int) error {
	if r.pending != nil && r.pending.LayerIndex != layer {
		return ErrStrokeLayerMismatch
	}
	return nil
}

func (r *Recorder) Record(d tilemap.MapDelta) error {
	if err := r.Check(d.LayerIndex); err != nil {
		return err
	}
	if d.Empty() {
		return nil
	}
	if r.pending != nil {
		r.pending.Changes = append(r.pending.Changes, d.Changes...)
		return nil
	}
	r.History.Push(d)
	return nil
}

func (r *Recorder) Reset() {
	r.pending = nil
	r.History.Clear()
}
