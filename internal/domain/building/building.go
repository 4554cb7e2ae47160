package building

import (
	"errors"
	"strings"

	"seraphmap/internal/domain/tilemap"
)

var (
	ErrInvalidBuilding = errors.New("invalid building")
	ErrInvalidZone     = errors.New("invalid zone")
	ErrFloorNotFound   = errors.New("floor not found")
)

type Zone struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (z Zone) Validate(mapWidth, mapHeight int) error {
	if z.Width <= 0 || z.Height <= 0 || z.X < 0 || z.Y < 0 {
		return ErrInvalidZone
	}
	if z.Width > mapWidth-z.X || z.Height > mapHeight-z.Y {
		return ErrInvalidZone
	}
	return nil
}

func (z Zone) Local(mapX, mapY int) (col, row int, ok bool) {
	col, row = mapX-z.X, mapY-z.Y
	if mapX < z.X || mapY < z.Y || col >= z.Width || row >= z.Height {
		return 0, 0, false
	}
	return col, row, true
}

type Floor struct {
	Name string
	Grid *tilemap.Grid
}

type Building struct {
	ID     string
	Name   string
	Zone   Zone
	Floors []*Floor
}

func (b *Building) Validate(mapWidth, mapHeight int) error {
	if strings.TrimSpace(b.ID) == "" {
		return ErrInvalidBuilding
	}
	return b.Zone.Validate(mapWidth, mapHeight)
}

func (b *Building) AddFloor(name string, layerNames ...string) (int, error) {
	g, err := tilemap.NewGrid(b.Zone.Width, b.Zone.Height, layerNames...)
	if err != nil {
		return 0, err
	}
	b.Floors = append(b.Floors, &Floor{Name: name, Grid: g})
	return len(b.Floors) - 1, nil
}

func (b *Building) AttachFloor(name string, g *tilemap.Grid) (int, error) {
	if g == nil || g.Width() != b.Zone.Width || g.Height() != b.Zone.Height {
		return 0, ErrInvalidZone
	}
	b.Floors = append(b.Floors, &Floor{Name: name, Grid: g})
	return len(b.Floors) - 1, nil
}

func (b *Building) Floor(index int) (*Floor, error) {
	if index < 0 || index >= len(b.Floors) {
		return nil, ErrFloorNotFound
	}
	return b.Floors[index], nil
}

func (b *Building) RemoveFloor(index int) error {
	if index < 0 || index >= len(b.Floors) {
		return ErrFloorNotFound
	}
	b.Floors = append(b.Floors[:index], b.Floors[index+1:]...)
	return nil
}
