package grid

import (
	mapset "github.com/deckarep/golang-set"
)

var orthogonal = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Reachable flood fills from start over free cells using 4-directional
// movement and returns the set of reached cells. A blocked or out-of-bounds
// start yields an empty set.
func (g *Grid) Reachable(start Cell) mapset.Set {
	visited := mapset.NewThreadUnsafeSet()
	if !g.IsFree(start) {
		return visited
	}

	visited.Add(start)
	queue := []Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range orthogonal {
			next := current.Add(d[0], d[1])
			if g.IsFree(next) && !visited.Contains(next) {
				visited.Add(next)
				queue = append(queue, next)
			}
		}
	}

	return visited
}

// Connected reports whether a and b lie in the same free region
func (g *Grid) Connected(a, b Cell) bool {
	if !g.IsFree(a) || !g.IsFree(b) {
		return false
	}
	return g.Reachable(a).Contains(b)
}

// Components returns the connected free regions in row-major order of their
// first cell. Cells inside each component are in flood-fill order.
func (g *Grid) Components() [][]Cell {
	seen := mapset.NewThreadUnsafeSet()
	var components [][]Cell

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			origin := Cell{Row: r, Col: c}
			if !g.IsFree(origin) || seen.Contains(origin) {
				continue
			}

			component := []Cell{origin}
			seen.Add(origin)
			for i := 0; i < len(component); i++ {
				for _, d := range orthogonal {
					next := component[i].Add(d[0], d[1])
					if g.IsFree(next) && !seen.Contains(next) {
						seen.Add(next)
						component = append(component, next)
					}
				}
			}
			components = append(components, component)
		}
	}

	return components
}
