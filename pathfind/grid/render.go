package grid

// Overlay symbols used by Render
const (
	SymbolPath    = '*'
	SymbolVisited = '+'
)

// Render draws the grid as text with the path marked. The first and last
// path cells are drawn as S and G. Cells in visited that are not on the
// path are drawn with SymbolVisited.
func (g *Grid) Render(path []Cell, visited []Cell) []string {
	canvas := make([][]rune, g.rows)
	for r := 0; r < g.rows; r++ {
		canvas[r] = make([]rune, g.cols)
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c] == Blocked {
				canvas[r][c] = SymbolBlocked
			} else {
				canvas[r][c] = SymbolFree
			}
		}
	}

	mark := func(cell Cell, symbol rune) {
		if g.InBounds(cell) {
			canvas[cell.Row][cell.Col] = symbol
		}
	}

	for _, cell := range visited {
		mark(cell, SymbolVisited)
	}
	for _, cell := range path {
		mark(cell, SymbolPath)
	}
	if len(path) > 0 {
		mark(path[0], SymbolStart)
		mark(path[len(path)-1], SymbolGoal)
	}

	lines := make([]string, g.rows)
	for r := range canvas {
		lines[r] = string(canvas[r])
	}
	return lines
}
