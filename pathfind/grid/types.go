package grid

import (
	"errors"
	"fmt"
)

// State is the occupancy of a single cell
type State uint8

const (
	Free State = iota
	Blocked
)

// Layout symbols
const (
	SymbolFree       = '.'
	SymbolFreeAlt    = '0'
	SymbolBlocked    = '#'
	SymbolBlockedAlt = '1'
	SymbolStart      = 'S'
	SymbolGoal       = 'G'
)

var (
	ErrEmptyGrid     = errors.New("grid has no cells")
	ErrRaggedGrid    = errors.New("grid rows have different widths")
	ErrInvalidSymbol = errors.New("invalid layout symbol")
)

// String returns the layout symbol for the state
func (s State) String() string {
	if s == Blocked {
		return string(SymbolBlocked)
	}
	return string(SymbolFree)
}

// Cell is a (row, col) coordinate on a grid
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String formats the cell as (row,col)
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns the cell offset by dr rows and dc columns
func (c Cell) Add(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Adjacent reports whether two cells share an edge
func (c Cell) Adjacent(other Cell) bool {
	dr := c.Row - other.Row
	if dr < 0 {
		dr = -dr
	}
	dc := c.Col - other.Col
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Markers holds the optional S and G positions found in a layout
type Markers struct {
	Start    Cell
	Goal     Cell
	HasStart bool
	HasGoal  bool
}
