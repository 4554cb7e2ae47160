package memory

import (
	"context"
	"sync"

	"seraphmap/internal/app/ports"
)

type Store struct {
	mu        sync.RWMutex
	maps      map[string]ports.MapRecord
	revisions map[string][]ports.MapRevision
}

func NewStore() *Store {
	return &Store{
		maps:      make(map[string]ports.MapRecord),
		revisions: make(map[string][]ports.MapRevision),
	}
}

type txKeyType struct{}

var txKey = txKeyType{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey).(bool)
	return v
}

// read and write take the store lock unless the caller already holds it
// through TxManager.
func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}
