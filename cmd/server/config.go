package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	Addr          string
	DSN           string
	MigrationsDir string
	HistoryLimit  int
	TileSize      int
	Layers        []string
	SessionTTL    time.Duration
	CORSOrigin    string
}

func loadConfig() config {
	return config{
		Addr:          stringEnv("SERAPHMAP_ADDR", ":8080"),
		DSN:           strings.TrimSpace(os.Getenv("SERAPHMAP_DB_DSN")),
		MigrationsDir: strings.TrimSpace(os.Getenv("SERAPHMAP_MIGRATIONS_DIR")),
		HistoryLimit:  intEnv("SERAPHMAP_HISTORY_LIMIT", 0),
		TileSize:      intEnv("SERAPHMAP_TILE_SIZE", 16),
		Layers:        layersEnv("SERAPHMAP_LAYERS"),
		SessionTTL:    time.Duration(intEnv("SERAPHMAP_SESSION_TTL_SECONDS", int((2 * time.Hour).Seconds()))) * time.Second,
		CORSOrigin:    strings.TrimSpace(os.Getenv("SERAPHMAP_CORS_ORIGIN")),
	}
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func layersEnv(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	out := []string{}
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
