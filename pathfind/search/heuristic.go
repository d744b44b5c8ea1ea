package search

import "github.com/wricardo/gridpath/pathfind/grid"

// Manhattan returns |dr| + |dc| between two cells
func Manhattan(from, to grid.Cell) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
