// Package grid provides the occupancy grid used by the path finder.
//
// A Grid is an immutable rectangular matrix of cells, each either Free or
// Blocked. Grids are built from a matrix of states with New or from a text
// layout with Parse:
//
//	g, err := grid.Parse([]string{
//		"S....",
//		".###.",
//		".#...",
//		".#.#.",
//		"...#G",
//	})
//
// Layout symbols:
//   - '.' or '0' free cell
//   - '#' or '1' blocked cell
//   - 'S' free cell marking the start
//   - 'G' free cell marking the goal
//
// Rows must all have the same width; ragged layouts are rejected at
// construction so neighbour checks never index outside a row.
//
// Cells are plain comparable values and are used as map keys throughout the
// search package. Nothing in this package mutates a Grid after construction.
package grid
