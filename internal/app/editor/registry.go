package editor

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrSessionNotFound = errors.New("editor session not found")

type Handle struct {
	mu sync.Mutex

	Workspace *Workspace
	MapName   string
	Version   int64
	touched   time.Time
}

type Registry struct {
	mu      sync.RWMutex
	handles map[string]*Handle
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{handles: map[string]*Handle{}, now: time.Now}
}

func (r *Registry) Create(ws *Workspace) (string, error) {
	for i := 0; i < 3; i++ {
		id, err := newSessionID()
		if err != nil {
			return "", err
		}
		r.mu.Lock()
		if _, exists := r.handles[id]; !exists {
			r.handles[id] = &Handle{Workspace: ws, touched: r.now()}
			r.mu.Unlock()
			hlog.Infof("editor session %s opened (%d open)", id, r.Len())
			return id, nil
		}
		r.mu.Unlock()
	}
	return "", fmt.Errorf("allocate session id: exhausted retries")
}

func (r *Registry) Do(id string, fn func(h *Handle) error) error {
	r.mu.RLock()
	h, ok := r.handles[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.touched = r.now()
	return fn(h)
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handles[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.handles, id)
	hlog.Infof("editor session %s closed", id)
	return nil
}

// Evict closes sessions idle for longer than ttl. Sessions busy in Do are
// skipped; unsaved edits in evicted sessions are discarded.
func (r *Registry) Evict(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)
	r.mu.RLock()
	snapshot := make(map[string]*Handle, len(r.handles))
	for id, h := range r.handles {
		snapshot[id] = h
	}
	r.mu.RUnlock()

	idle := []string{}
	for id, h := range snapshot {
		if !h.mu.TryLock() {
			continue
		}
		if h.touched.Before(cutoff) {
			idle = append(idle, id)
		}
		h.mu.Unlock()
	}
	if len(idle) == 0 {
		return 0
	}

	r.mu.Lock()
	n := 0
	for _, id := range idle {
		if r.handles[id] == snapshot[id] {
			delete(r.handles, id)
			n++
		}
	}
	r.mu.Unlock()
	if n > 0 {
		hlog.Infof("evicted %d idle editor sessions", n)
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

func newSessionID() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return "es_" + hex.EncodeToString(b), nil
}
