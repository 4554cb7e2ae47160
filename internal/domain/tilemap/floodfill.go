package tilemap

// FloodFill computes a bucket fill from (x, y) without touching the grid.
func FloodFill(g *Grid, layer, x, y int, gid GID) []Change {
	seed, ok := g.index(layer, x, y)
	if !ok {
		return nil
	}
	cells := g.layers[layer].cells
	target := cells[seed].Top()
	if target == gid {
		return nil
	}

	visited := make([]bool, len(cells))
	visited[seed] = true
	stack := []int{seed}
	var out []Change
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cx, cy := i%g.width, i/g.width
		old := cells[i]
		if next, changed := old.Apply(gid); changed {
			out = append(out, Change{X: cx, Y: cy, Old: old.Clone(), New: next})
		}

		for _, n := range [4]Point{{cx + 1, cy}, {cx - 1, cy}, {cx, cy + 1}, {cx, cy - 1}} {
			if !g.InBounds(n.X, n.Y) {
				continue
			}
			j := n.Y*g.width + n.X
			if visited[j] || cells[j].Top() != target {
				continue
			}
			visited[j] = true
			stack = append(stack, j)
		}
	}
	return out
}
