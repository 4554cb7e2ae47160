package editor

import (
	"seraphmap/internal/domain/building"
	"seraphmap/internal/domain/tilemap"
)

type CreateRequest struct {
	Width  int
	Height int
	Layers []string
}

type CreateResponse struct {
	SessionID string `json:"session_id"`
	View
}

type SessionRequest struct {
	SessionID string
}

type NewMapRequest struct {
	SessionID string
	Width     int
	Height    int
	Layers    []string
}

type ViewRequest struct {
	SessionID string
	Target    *Target
}

type TargetRequest struct {
	SessionID string
	Target    Target
}

type StrokeRequest struct {
	SessionID string
	Layer     int
}

type PaintRequest struct {
	SessionID string
	Layer     int
	Cells     []tilemap.CellPaint
}

type StampRequest struct {
	SessionID string
	Layer     int
	X         int
	Y         int
	Stamp     tilemap.Stamp
}

type FillRequest struct {
	SessionID string
	Layer     int
	X         int
	Y         int
	GID       tilemap.GID
}

type BuildingRequest struct {
	SessionID string
	ID        string
	Name      string
	Zone      building.Zone
}

type RemoveBuildingRequest struct {
	SessionID  string
	BuildingID string
}

type FloorRequest struct {
	SessionID  string
	BuildingID string
	Name       string
	Layers     []string
}

type RemoveFloorRequest struct {
	SessionID  string
	BuildingID string
	Floor      int
}

type SaveRequest struct {
	SessionID string
	MapName   string
}

type LocateRequest struct {
	SessionID string
	X         int
	Y         int
}

type LoadRequest struct {
	SessionID string
	MapName   string
}

type CellView struct {
	X   int         `json:"x"`
	Y   int         `json:"y"`
	GID tilemap.GID `json:"gid"`
}

type DeltaView struct {
	Layer int        `json:"layer"`
	Cells []CellView `json:"cells"`
}

type State struct {
	Target   Target `json:"target"`
	CanUndo  bool   `json:"can_undo"`
	CanRedo  bool   `json:"can_redo"`
	InStroke bool   `json:"in_stroke"`

	StrokeLayer *int `json:"stroke_layer,omitempty"`
}

type EditResponse struct {
	Applied bool      `json:"applied"`
	Delta   DeltaView `json:"delta"`
	State   State     `json:"state"`
}

type StrokeResponse struct {
	Committed bool  `json:"committed"`
	State     State `json:"state"`
}

type LayerView struct {
	Name string        `json:"name"`
	Data []tilemap.GID `json:"data"`
}

type BuildingView struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Zone   building.Zone `json:"zone"`
	Floors []string      `json:"floors"`
}

type View struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Layers    []LayerView    `json:"layers"`
	Buildings []BuildingView `json:"buildings"`
	MapName   string         `json:"map_name,omitempty"`
	Version   int64          `json:"version"`
	State     State          `json:"state"`
}

type LocateResponse struct {
	Found      bool   `json:"found"`
	BuildingID string `json:"building_id,omitempty"`
	Col        int    `json:"col"`
	Row        int    `json:"row"`
}

type FloorResponse struct {
	BuildingID string `json:"building_id"`
	Floor      int    `json:"floor"`
}
