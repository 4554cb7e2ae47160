package mapio

import (
	"encoding/json"
	"errors"
	"fmt"

	"seraphmap/internal/domain/building"
	"seraphmap/internal/domain/tilemap"
)

const (
	OrientationOrthogonal = "orthogonal"
	LayerTypeTile         = "tilelayer"
)

var ErrInvalidDocument = errors.New("invalid map document")

type Document struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	TileWidth   int            `json:"tilewidth"`
	TileHeight  int            `json:"tileheight"`
	Orientation string         `json:"orientation"`
	Layers      []LayerData    `json:"layers"`
	Buildings   []BuildingData `json:"buildings,omitempty"`
}

type LayerData struct {
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Data   []tilemap.GID `json:"data"`
}

type BuildingData struct {
	ID     string        `json:"id"`
	Name   string        `json:"name,omitempty"`
	Zone   building.Zone `json:"zone"`
	Floors []FloorData   `json:"floors,omitempty"`
}

type FloorData struct {
	Name   string      `json:"name"`
	Layers []LayerData `json:"layers"`
}

func EncodeLayers(g *tilemap.Grid) []LayerData {
	names := g.LayerNames()
	out := make([]LayerData, len(names))
	for i, name := range names {
		out[i] = LayerData{
			Name:   name,
			Type:   LayerTypeTile,
			Width:  g.Width(),
			Height: g.Height(),
			Data:   g.Tops(i),
		}
	}
	return out
}

func DecodeLayers(width, height int, layers []LayerData) (*tilemap.Grid, error) {
	names := make([]string, len(layers))
	for i, l := range layers {
		if len(l.Data) != width*height {
			return nil, fmt.Errorf("%w: layer %q has %d cells, want %d", ErrInvalidDocument, l.Name, len(l.Data), width*height)
		}
		names[i] = l.Name
	}
	g, err := tilemap.NewGrid(width, height, names...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for i, l := range layers {
		for j, gid := range l.Data {
			if gid == tilemap.Empty {
				continue
			}
			g.Set(i, j%width, j/width, tilemap.StackOf(gid))
		}
	}
	return g, nil
}

func Encode(g *tilemap.Grid, buildings []*building.Building, tileSize int) Document {
	doc := Document{
		Width:       g.Width(),
		Height:      g.Height(),
		TileWidth:   tileSize,
		TileHeight:  tileSize,
		Orientation: OrientationOrthogonal,
		Layers:      EncodeLayers(g),
	}
	for _, b := range buildings {
		bd := BuildingData{ID: b.ID, Name: b.Name, Zone: b.Zone}
		for _, f := range b.Floors {
			bd.Floors = append(bd.Floors, FloorData{Name: f.Name, Layers: EncodeLayers(f.Grid)})
		}
		doc.Buildings = append(doc.Buildings, bd)
	}
	return doc
}

func Decode(doc Document) (*tilemap.Grid, []*building.Building, error) {
	g, err := DecodeLayers(doc.Width, doc.Height, doc.Layers)
	if err != nil {
		return nil, nil, err
	}
	out := make([]*building.Building, 0, len(doc.Buildings))
	seen := map[string]bool{}
	for _, bd := range doc.Buildings {
		b := &building.Building{ID: bd.ID, Name: bd.Name, Zone: bd.Zone}
		if err := b.Validate(doc.Width, doc.Height); err != nil || seen[bd.ID] {
			return nil, nil, fmt.Errorf("%w: building %q", ErrInvalidDocument, bd.ID)
		}
		seen[bd.ID] = true
		for _, fd := range bd.Floors {
			fg, err := DecodeLayers(bd.Zone.Width, bd.Zone.Height, fd.Layers)
			if err != nil {
				return nil, nil, fmt.Errorf("building %q floor %q: %w", bd.ID, fd.Name, err)
			}
			if _, err := b.AttachFloor(fd.Name, fg); err != nil {
				return nil, nil, fmt.Errorf("%w: building %q floor %q", ErrInvalidDocument, bd.ID, fd.Name)
			}
		}
		out = append(out, b)
	}
	return g, out, nil
}

func Marshal(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}
