package ports

import (
	"context"
	"time"

	"seraphmap/internal/app/mapio"
)

type MapRecord struct {
	Name      string
	Document  mapio.Document
	Version   int64
	UpdatedAt time.Time
}

type MapSummary struct {
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MapRepository interface {
	Get(ctx context.Context, name string) (MapRecord, error)
	SaveWithVersion(ctx context.Context, rec MapRecord, expectedVersion int64) error
	List(ctx context.Context) ([]MapSummary, error)
}

type MapRevision struct {
	MapName       string    `json:"map_name"`
	Version       int64     `json:"version"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	LayerCount    int       `json:"layer_count"`
	BuildingCount int       `json:"building_count"`
	SavedAt       time.Time `json:"saved_at"`
}

type MapRevisionRepository interface {
	Append(ctx context.Context, rev MapRevision) error
	ListByMap(ctx context.Context, mapName string, limit int) ([]MapRevision, error)
}
