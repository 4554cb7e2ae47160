package memory

import (
	"context"

	"seraphmap/internal/app/ports"
)

type RevisionRepo struct {
	store *Store
}

func NewRevisionRepo(store *Store) RevisionRepo {
	return RevisionRepo{store: store}
}

func (r RevisionRepo) Append(ctx context.Context, rev ports.MapRevision) error {
	return r.store.write(ctx, func() error {
		r.store.revisions[rev.MapName] = append(r.store.revisions[rev.MapName], rev)
		return nil
	})
}

func (r RevisionRepo) ListByMap(ctx context.Context, mapName string, limit int) ([]ports.MapRevision, error) {
	var out []ports.MapRevision
	r.store.read(ctx, func() {
		all := r.store.revisions[mapName]
		for i := len(all) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, all[i])
		}
	})
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
