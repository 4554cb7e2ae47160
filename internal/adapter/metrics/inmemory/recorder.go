package inmemory

import (
	"sync"

	"seraphmap/internal/app/ports"
)

type Snapshot struct {
	EditTotal        uint64            `json:"edit_total"`
	EditApplied      uint64            `json:"edit_applied"`
	EditNoop         uint64            `json:"edit_noop"`
	CellsChanged     uint64            `json:"cells_changed"`
	StrokesCommitted uint64            `json:"strokes_committed"`
	ByKind           map[string]uint64 `json:"by_kind"`
}

type Recorder struct {
	mu      sync.Mutex
	applied uint64
	noop    uint64
	cells   uint64
	strokes uint64
	byKind  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind: map[string]uint64{},
	}
}

func (r *Recorder) RecordEdit(kind ports.EditKind, cells int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied++
	if cells > 0 {
		r.cells += uint64(cells)
	}
	r.byKind[string(kind)]++
}

func (r *Recorder) RecordNoop(kind ports.EditKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.noop++
}

func (r *Recorder) RecordStrokeCommitted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strokes++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		EditApplied:      r.applied,
		EditNoop:         r.noop,
		EditTotal:        r.applied + r.noop,
		CellsChanged:     r.cells,
		StrokesCommitted: r.strokes,
		ByKind:           make(map[string]uint64, len(r.byKind)),
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
