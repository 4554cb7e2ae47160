package tilemap

type Change struct {
	X   int       `json:"x"`
	Y   int       `json:"y"`
	Old CellStack `json:"old"`
	New CellStack `json:"new"`
}

type MapDelta struct {
	LayerIndex int      `json:"layer_index"`
	Changes    []Change `json:"changes"`
}

func (d MapDelta) Empty() bool {
	return len(d.Changes) == 0
}

func (d MapDelta) Revert(g *Grid) {
	for i := len(d.Changes) - 1; i >= 0; i-- {
		c := d.Changes[i]
		g.Set(d.LayerIndex, c.X, c.Y, c.Old)
	}
}

func (d MapDelta) Replay(g *Grid) {
	for _, c := range d.Changes {
		g.Set(d.LayerIndex, c.X, c.Y, c.New)
	}
}
