package memory

import (
	"context"
	"maps"
)

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	savedMaps := maps.Clone(s.maps)
	savedRevisions := maps.Clone(s.revisions)
	if err := fn(context.WithValue(ctx, txKey, true)); err != nil {
		s.maps, s.revisions = savedMaps, savedRevisions
		return err
	}
	return nil
}
