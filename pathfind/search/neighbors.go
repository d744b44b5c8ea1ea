package search

import "github.com/wricardo/gridpath/pathfind/grid"

// Expansion order: right, down, left, up
var directions = [4]struct{ dr, dc int }{
	{0, 1},
	{1, 0},
	{0, -1},
	{-1, 0},
}

// Neighbors returns the free, in-bounds orthogonal neighbours of c
func Neighbors(g *grid.Grid, c grid.Cell) []grid.Cell {
	neighbors := make([]grid.Cell, 0, len(directions))
	for _, d := range directions {
		next := c.Add(d.dr, d.dc)
		if g.IsFree(next) {
			neighbors = append(neighbors, next)
		}
	}
	return neighbors
}
