package memory

import (
	"context"
	"sort"

	"seraphmap/internal/app/ports"
)

type MapRepo struct {
	store *Store
}

func NewMapRepo(store *Store) MapRepo {
	return MapRepo{store: store}
}

func (r MapRepo) Get(ctx context.Context, name string) (ports.MapRecord, error) {
	var (
		rec ports.MapRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.maps[name]
	})
	if !ok {
		return ports.MapRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r MapRepo) SaveWithVersion(ctx context.Context, rec ports.MapRecord, expectedVersion int64) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.maps[rec.Name]
		if !ok {
			if expectedVersion != 0 {
				return ports.ErrConflict
			}
			r.store.maps[rec.Name] = rec
			return nil
		}
		if current.Version != expectedVersion {
			return ports.ErrConflict
		}
		r.store.maps[rec.Name] = rec
		return nil
	})
}

func (r MapRepo) List(ctx context.Context) ([]ports.MapSummary, error) {
	out := []ports.MapSummary{}
	r.store.read(ctx, func() {
		for _, rec := range r.store.maps {
			out = append(out, ports.MapSummary{
				Name:      rec.Name,
				Width:     rec.Document.Width,
				Height:    rec.Document.Height,
				Version:   rec.Version,
				UpdatedAt: rec.UpdatedAt,
			})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
