// Package search implements A* shortest-path search over a grid.Grid.
//
// The engine is made of four parts:
//   - Manhattan, the admissible and consistent heuristic for 4-directional
//     unit-cost movement
//   - Neighbors, which yields free orthogonal neighbours in the fixed order
//     right, down, left, up
//   - Frontier, a binary heap ordered by f-score and then by insertion
//     sequence, so equal priorities pop in FIFO order
//   - ReconstructPath, which walks predecessor links back from the goal
//
// Searcher is the state machine that ties them together. Each call to Step
// pops exactly one frontier entry, which lets callers put expansion or
// wall-clock limits around the loop, or drive it one expansion at a time.
// Search runs a Searcher to completion.
//
// Usage:
//
//	g, _ := grid.Parse(layout)
//	result, err := search.Search(g, grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 4, Col: 4})
//	if err != nil {
//		// start or goal out of bounds or blocked
//	}
//	if !result.Found {
//		// no path
//	}
//
// A search owns all of its state. Independent searches over the same Grid may
// run in parallel.
package search
