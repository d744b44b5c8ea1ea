package search

import "github.com/wricardo/gridpath/pathfind/grid"

// ReconstructPath follows predecessor links back from goal until it reaches a
// cell with no predecessor, then returns the route in start-to-goal order
func ReconstructPath(cameFrom map[grid.Cell]grid.Cell, goal grid.Cell) []grid.Cell {
	path := []grid.Cell{goal}
	current := goal
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
