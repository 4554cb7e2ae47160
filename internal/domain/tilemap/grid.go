package tilemap

import (
	"errors"
	"math"
)

var ErrInvalidSize = errors.New("invalid grid size")

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Layer struct {
	Name  string
	cells []CellStack
}

type Grid struct {
	width  int
	height int
	layers []Layer
}

func NewGrid(width, height int, layerNames ...string) (*Grid, error) {
	if width <= 0 || height <= 0 || len(layerNames) == 0 {
		return nil, ErrInvalidSize
	}
	if width > math.MaxInt/height {
		return nil, ErrInvalidSize
	}
	g := &Grid{width: width, height: height, layers: make([]Layer, len(layerNames))}
	for i, name := range layerNames {
		g.layers[i] = Layer{Name: name, cells: make([]CellStack, width*height)}
	}
	return g, nil
}

func (g *Grid) Width() int      { return g.width }
func (g *Grid) Height() int     { return g.height }
func (g *Grid) LayerCount() int { return len(g.layers) }

func (g *Grid) LayerNames() []string {
	out := make([]string, len(g.layers))
	for i, l := range g.layers {
		out[i] = l.Name
	}
	return out
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) HasLayer(layer int) bool {
	return layer >= 0 && layer < len(g.layers)
}

func (g *Grid) index(layer, x, y int) (int, bool) {
	if !g.HasLayer(layer) || !g.InBounds(x, y) {
		return 0, false
	}
	return y*g.width + x, true
}

func (g *Grid) Get(layer, x, y int) CellStack {
	i, ok := g.index(layer, x, y)
	if !ok {
		return nil
	}
	return g.layers[layer].cells[i].Clone()
}

func (g *Grid) Top(layer, x, y int) GID {
	i, ok := g.index(layer, x, y)
	if !ok {
		return Empty
	}
	return g.layers[layer].cells[i].Top()
}

func (g *Grid) Set(layer, x, y int, s CellStack) {
	i, ok := g.index(layer, x, y)
	if !ok {
		return
	}
	g.layers[layer].cells[i] = s.Clone()
}

func (g *Grid) Tops(layer int) []GID {
	if !g.HasLayer(layer) {
		return nil
	}
	out := make([]GID, len(g.layers[layer].cells))
	for i, s := range g.layers[layer].cells {
		out[i] = s.Top()
	}
	return out
}
