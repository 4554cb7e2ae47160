package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"seraphmap/db"
	"seraphmap/internal/app/mapio"
	"seraphmap/internal/app/ports"
	"seraphmap/internal/domain/tilemap"

	"github.com/google/go-cmp/cmp"
	"gorm.io/gorm"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("SERAPHMAP_DB_DSN")
	if dsn == "" {
		t.Skip("SERAPHMAP_DB_DSN is required for integration test")
	}
	return dsn
}

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), gdb, db.Migrations, db.MigrationsDir); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return gdb
}

func testDocument(t *testing.T) mapio.Document {
	t.Helper()
	g, err := tilemap.NewGrid(3, 2, "ground", "decorations")
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	g.Paint(0, 1, 1, 7)
	g.Paint(1, 2, 0, 9)
	return mapio.Encode(g, nil, 16)
}

func TestMapRepo_VersionedSaveRoundTrip(t *testing.T) {
	gdb := openMigrated(t)
	ctx := context.Background()
	name := "it-map-roundtrip"
	_ = gdb.Exec("DELETE FROM tile_maps WHERE name = ?", name).Error

	repo := NewMapRepo(gdb)
	doc := testDocument(t)
	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.SaveWithVersion(ctx, ports.MapRecord{Name: name, Document: doc, Version: 1, UpdatedAt: now}, 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, ports.MapRecord{Name: name, Document: doc, Version: 1, UpdatedAt: now}, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on duplicate create, got %v", err)
	}

	got, err := repo.Get(ctx, name)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("version mismatch: got=%d want=1", got.Version)
	}
	if diff := cmp.Diff(doc, got.Document); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}

	if err := repo.SaveWithVersion(ctx, ports.MapRecord{Name: name, Document: doc, Version: 2, UpdatedAt: now}, 5); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}
	if err := repo.SaveWithVersion(ctx, ports.MapRecord{Name: name, Document: doc, Version: 2, UpdatedAt: now}, 1); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, s := range list {
		if s.Name == name {
			found = true
			if s.Version != 2 || s.Width != 3 || s.Height != 2 {
				t.Fatalf("unexpected summary: %+v", s)
			}
		}
	}
	if !found {
		t.Fatalf("expected %s in list", name)
	}
}

func TestMapRepo_GetMissing(t *testing.T) {
	gdb := openMigrated(t)
	_, err := NewMapRepo(gdb).Get(context.Background(), "it-map-missing")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRevisionRepo_RollsBackWithTx(t *testing.T) {
	gdb := openMigrated(t)
	ctx := context.Background()
	name := "it-map-revisions"
	_ = gdb.Exec("DELETE FROM tile_maps WHERE name = ?", name).Error

	maps := NewMapRepo(gdb)
	revs := NewRevisionRepo(gdb)
	tx := NewTxManager(gdb)
	doc := testDocument(t)

	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := maps.SaveWithVersion(txCtx, ports.MapRecord{Name: name, Document: doc, Version: 1, UpdatedAt: time.Now()}, 0); err != nil {
			return err
		}
		return revs.Append(txCtx, ports.MapRevision{MapName: name, Version: 1, Width: 3, Height: 2, LayerCount: 2, SavedAt: time.Now()})
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	sentinel := errors.New("boom")
	err = tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := maps.SaveWithVersion(txCtx, ports.MapRecord{Name: name, Document: doc, Version: 2, UpdatedAt: time.Now()}, 1); err != nil {
			return err
		}
		if err := revs.Append(txCtx, ports.MapRevision{MapName: name, Version: 2, Width: 3, Height: 2, LayerCount: 2, SavedAt: time.Now()}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}

	got, err := maps.Get(ctx, name)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("expected rollback to version 1, got %d", got.Version)
	}
	list, err := revs.ListByMap(ctx, name, 10)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(list) != 1 || list[0].Version != 1 {
		t.Fatalf("unexpected revisions: %+v", list)
	}
}
