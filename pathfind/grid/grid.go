package grid

import (
	"fmt"
	"strings"
)

// Grid is an immutable rectangular occupancy matrix
type Grid struct {
	cells [][]State
	rows  int
	cols  int
}

// New builds a grid from a matrix of states. The input is copied.
func New(rows [][]State) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	width := len(rows[0])
	cells := make([][]State, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedGrid, i, len(row), width)
		}
		cells[i] = make([]State, width)
		copy(cells[i], row)
	}

	return &Grid{cells: cells, rows: len(rows), cols: width}, nil
}

// FromInts builds a grid from 0 (free) / non-zero (blocked) values
func FromInts(values [][]int) (*Grid, error) {
	rows := make([][]State, len(values))
	for i, row := range values {
		rows[i] = make([]State, len(row))
		for j, v := range row {
			if v != 0 {
				rows[i][j] = Blocked
			}
		}
	}
	return New(rows)
}

// Parse builds a grid from a text layout
func Parse(layout []string) (*Grid, error) {
	g, _, err := ParseMarkers(layout)
	return g, err
}

// ParseMarkers builds a grid from a text layout and also reports the
// positions of the S and G markers, if present
func ParseMarkers(layout []string) (*Grid, Markers, error) {
	var markers Markers

	if len(layout) == 0 {
		return nil, markers, ErrEmptyGrid
	}

	rows := make([][]State, len(layout))
	for i, line := range layout {
		line = strings.TrimRight(line, "\r")
		rows[i] = make([]State, 0, len(line))
		for j, ch := range line {
			switch ch {
			case SymbolFree, SymbolFreeAlt:
				rows[i] = append(rows[i], Free)
			case SymbolBlocked, SymbolBlockedAlt:
				rows[i] = append(rows[i], Blocked)
			case SymbolStart:
				if markers.HasStart {
					return nil, markers, fmt.Errorf("%w: second start marker at row %d, col %d", ErrInvalidSymbol, i, j)
				}
				markers.Start = Cell{Row: i, Col: j}
				markers.HasStart = true
				rows[i] = append(rows[i], Free)
			case SymbolGoal:
				if markers.HasGoal {
					return nil, markers, fmt.Errorf("%w: second goal marker at row %d, col %d", ErrInvalidSymbol, i, j)
				}
				markers.Goal = Cell{Row: i, Col: j}
				markers.HasGoal = true
				rows[i] = append(rows[i], Free)
			default:
				return nil, markers, fmt.Errorf("%w: '%c' at row %d, col %d", ErrInvalidSymbol, ch, i, j)
			}
		}
	}

	g, err := New(rows)
	if err != nil {
		return nil, markers, err
	}
	return g, markers, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether c lies inside the grid
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// IsFree reports whether c is inside the grid and traversable
func (g *Grid) IsFree(c Cell) bool {
	return g.InBounds(c) && g.cells[c.Row][c.Col] == Free
}

// State returns the state of c. Out-of-bounds cells read as Blocked.
func (g *Grid) State(c Cell) State {
	if !g.InBounds(c) {
		return Blocked
	}
	return g.cells[c.Row][c.Col]
}

// FreeCount returns the number of free cells
func (g *Grid) FreeCount() int {
	count := 0
	for _, row := range g.cells {
		for _, s := range row {
			if s == Free {
				count++
			}
		}
	}
	return count
}

// Layout renders the grid back to text using '.' and '#'
func (g *Grid) Layout() []string {
	layout := make([]string, g.rows)
	var b strings.Builder
	for i, row := range g.cells {
		b.Reset()
		for _, s := range row {
			b.WriteString(s.String())
		}
		layout[i] = b.String()
	}
	return layout
}
