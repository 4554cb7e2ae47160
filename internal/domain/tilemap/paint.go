package tilemap

type CellPaint struct {
	X   int `json:"x"`
	Y   int `json:"y"`
	GID GID `json:"gid"`
}

type Stamp struct {
	Width int   `json:"width"`
	GIDs  []GID `json:"gids"`
}

func (s Stamp) Height() int {
	if s.Width <= 0 {
		return 0
	}
	return (len(s.GIDs) + s.Width - 1) / s.Width
}

func (g *Grid) Paint(layer, x, y int, gid GID) (Change, bool) {
	i, ok := g.index(layer, x, y)
	if !ok {
		return Change{}, false
	}
	old := g.layers[layer].cells[i]
	next, changed := old.Apply(gid)
	if !changed {
		return Change{}, false
	}
	g.layers[layer].cells[i] = next
	return Change{X: x, Y: y, Old: old.Clone(), New: next.Clone()}, true
}

func (g *Grid) PaintBatch(layer int, cells []CellPaint) []Change {
	var out []Change
	for _, c := range cells {
		if ch, ok := g.Paint(layer, c.X, c.Y, c.GID); ok {
			out = append(out, ch)
		}
	}
	return out
}

func (g *Grid) stampCells(x, y int, st Stamp) []CellPaint {
	if st.Width <= 0 {
		return nil
	}
	out := make([]CellPaint, 0, len(st.GIDs))
	for i, gid := range st.GIDs {
		if gid == Empty {
			continue
		}
		cx, cy := x+i%st.Width, y+i/st.Width
		if !g.InBounds(cx, cy) {
			continue
		}
		out = append(out, CellPaint{X: cx, Y: cy, GID: gid})
	}
	return out
}

func (g *Grid) PaintStamp(layer, x, y int, st Stamp) []Change {
	return g.PaintBatch(layer, g.stampCells(x, y, st))
}

func (g *Grid) Fill(layer, x, y int, gid GID) []Change {
	changes := FloodFill(g, layer, x, y, gid)
	for _, c := range changes {
		g.Set(layer, c.X, c.Y, c.New)
	}
	return changes
}
