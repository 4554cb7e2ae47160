package main

import (
	"context"
	"io/fs"
	"os"
	"time"

	"seraphmap/db"
	httpadapter "seraphmap/internal/adapter/http"
	metricsinmem "seraphmap/internal/adapter/metrics/inmemory"
	gormrepo "seraphmap/internal/adapter/repo/gorm"
	"seraphmap/internal/adapter/repo/memory"
	"seraphmap/internal/app/editor"
	"seraphmap/internal/app/maps"
	"seraphmap/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func main() {
	cfg := loadConfig()
	mapRepo, revisionRepo, txManager := mustBuildRepos(cfg)
	kpiRecorder := metricsinmem.NewRecorder()
	sessions := editor.NewRegistry()

	h := httpadapter.Handler{
		Editor: editor.Service{
			Sessions: sessions,
			Metrics:  kpiRecorder,
			SaveUC: maps.SaveUseCase{
				TxManager: txManager,
				Maps:      mapRepo,
				Revisions: revisionRepo,
				Now:       time.Now,
			},
			LoadUC:        maps.LoadUseCase{Maps: mapRepo},
			DefaultLayers: cfg.Layers,
			HistoryLimit:  cfg.HistoryLimit,
			TileSize:      cfg.TileSize,
		},
		ListUC:      maps.ListUseCase{Maps: mapRepo},
		RevisionsUC: maps.RevisionsUseCase{Revisions: revisionRepo},
		KPI:         kpiRecorder,
		CORSOrigin:  cfg.CORSOrigin,
	}

	go evictIdleSessions(sessions, cfg.SessionTTL)

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	hlog.Infof("seraphmap server listening on %s", cfg.Addr)
	s.Spin()
}

func mustBuildRepos(cfg config) (ports.MapRepository, ports.MapRevisionRepository, ports.TxManager) {
	if cfg.DSN == "" {
		hlog.Warn("SERAPHMAP_DB_DSN not set; maps are kept in memory only")
		store := memory.NewStore()
		return memory.NewMapRepo(store), memory.NewRevisionRepo(store), memory.NewTxManager(store)
	}

	gdb, err := gormrepo.OpenPostgres(cfg.DSN)
	if err != nil {
		hlog.Fatalf("open postgres: %v", err)
	}
	fsys, dir := migrationSource(cfg.MigrationsDir)
	if err := gormrepo.ApplyMigrations(context.Background(), gdb, fsys, dir); err != nil {
		hlog.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewMapRepo(gdb), gormrepo.NewRevisionRepo(gdb), gormrepo.NewTxManager(gdb)
}

func migrationSource(dir string) (fs.FS, string) {
	if dir == "" {
		return db.Migrations, db.MigrationsDir
	}
	return os.DirFS(dir), "."
}

func evictIdleSessions(sessions *editor.Registry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 4)
	defer ticker.Stop()
	for range ticker.C {
		sessions.Evict(ttl)
	}
}
