package search

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wricardo/gridpath/pathfind/grid"
)

func TestManhattan(t *testing.T) {
	tests := []struct {
		from, to grid.Cell
		expected int
	}{
		{grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 0, Col: 0}, 0},
		{grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 4, Col: 4}, 8},
		{grid.Cell{Row: 4, Col: 4}, grid.Cell{Row: 0, Col: 0}, 8},
		{grid.Cell{Row: 2, Col: 7}, grid.Cell{Row: 5, Col: 1}, 9},
		{grid.Cell{Row: -1, Col: 3}, grid.Cell{Row: 1, Col: 3}, 2},
	}

	for _, test := range tests {
		if got := Manhattan(test.from, test.to); got != test.expected {
			t.Errorf("Manhattan(%v, %v) = %d, expected %d", test.from, test.to, got, test.expected)
		}
	}
}

func TestNeighbors(t *testing.T) {
	g := mustParse(t,
		"...",
		".#.",
		"...",
	)

	tests := []struct {
		name     string
		cell     grid.Cell
		expected []grid.Cell
	}{
		{"corner", grid.Cell{Row: 0, Col: 0}, []grid.Cell{{0, 1}, {1, 0}}},
		{"edge beside wall", grid.Cell{Row: 0, Col: 1}, []grid.Cell{{0, 2}, {0, 0}}},
		{"right edge", grid.Cell{Row: 1, Col: 2}, []grid.Cell{{2, 2}, {0, 2}}},
		{"bottom middle", grid.Cell{Row: 2, Col: 1}, []grid.Cell{{2, 2}, {2, 0}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Neighbors(g, test.cell)
			if !reflect.DeepEqual(got, test.expected) {
				t.Errorf("Neighbors(%v) = %v, expected %v", test.cell, got, test.expected)
			}
		})
	}
}

func TestNeighbors_Order(t *testing.T) {
	g := mustParse(t,
		"...",
		"...",
		"...",
	)

	got := Neighbors(g, grid.Cell{Row: 1, Col: 1})
	expected := []grid.Cell{{1, 2}, {2, 1}, {1, 0}, {0, 1}} // right, down, left, up
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestFrontier_OrderAndTieBreak(t *testing.T) {
	f := NewFrontier()

	f.Push(5, grid.Cell{Row: 0, Col: 0}, 0)
	f.Push(3, grid.Cell{Row: 1, Col: 0}, 0)
	f.Push(5, grid.Cell{Row: 2, Col: 0}, 0)
	f.Push(3, grid.Cell{Row: 3, Col: 0}, 0)
	f.Push(4, grid.Cell{Row: 4, Col: 0}, 0)

	expected := []int{1, 3, 4, 0, 2}
	for i, row := range expected {
		entry, ok := f.Pop()
		if !ok {
			t.Fatalf("pop %d: frontier unexpectedly empty", i)
		}
		if entry.Cell.Row != row {
			t.Errorf("pop %d: expected row %d, got %v (priority %d, seq %d)", i, row, entry.Cell, entry.Priority, entry.Seq)
		}
	}

	if _, ok := f.Pop(); ok {
		t.Error("expected Pop on an empty frontier to fail")
	}
}

func TestFrontier_Duplicates(t *testing.T) {
	f := NewFrontier()
	c := grid.Cell{Row: 1, Col: 1}

	f.Push(9, c, 5)
	f.Push(7, c, 3)

	if f.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", f.Len())
	}
	if cells := f.Cells(); len(cells) != 1 {
		t.Errorf("expected 1 distinct cell, got %v", cells)
	}

	first, _ := f.Pop()
	if first.Priority != 7 || first.GScore != 3 {
		t.Errorf("expected the cheaper duplicate first, got %+v", first)
	}
}

func TestReconstructPath(t *testing.T) {
	cameFrom := map[grid.Cell]grid.Cell{
		{0, 1}: {0, 0},
		{1, 1}: {0, 1},
		{1, 2}: {1, 1},
		{5, 5}: {4, 5},
	}

	got := ReconstructPath(cameFrom, grid.Cell{Row: 1, Col: 2})
	expected := []grid.Cell{{0, 0}, {0, 1}, {1, 1}, {1, 2}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	if got := ReconstructPath(cameFrom, grid.Cell{Row: 0, Col: 0}); !reflect.DeepEqual(got, []grid.Cell{{0, 0}}) {
		t.Errorf("expected a single-cell path for the root, got %v", got)
	}
}

func TestSearcher_StateMachine(t *testing.T) {
	g := mustParse(t, "...")
	s, err := NewSearcher(g, grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 0, Col: 2})
	if err != nil {
		t.Fatalf("NewSearcher() failed: %v", err)
	}

	if s.State() != Initialized {
		t.Fatalf("expected Initialized, got %v", s.State())
	}
	if cost, ok := s.CostTo(grid.Cell{Row: 0, Col: 0}); !ok || cost != 0 {
		t.Errorf("expected g(start) = 0, got %d (%v)", cost, ok)
	}

	snap := s.Snapshot()
	if snap.FrontierSize != 1 || snap.Frontier[0] != (grid.Cell{Row: 0, Col: 0}) {
		t.Errorf("expected only start on the frontier, got %+v", snap)
	}

	step, err := s.Step()
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if step.Index != 1 || step.Current != (grid.Cell{Row: 0, Col: 0}) || step.State != Expanding {
		t.Errorf("unexpected first step: %+v", step)
	}
	if !reflect.DeepEqual(step.Improved, []grid.Cell{{0, 1}}) {
		t.Errorf("expected (0,1) to be improved, got %v", step.Improved)
	}

	s.Step()
	step, _ = s.Step()
	if step.State != GoalFound || step.Current != (grid.Cell{Row: 0, Col: 2}) {
		t.Errorf("expected the goal on the third pop, got %+v", step)
	}

	if _, err := s.Step(); !errors.Is(err, ErrSearchFinished) {
		t.Errorf("expected ErrSearchFinished after the goal, got %v", err)
	}

	result := s.Result()
	if !result.Found || result.Cost != 2 || result.Steps != 3 {
		t.Errorf("unexpected result: %+v", result)
	}
	if snap := s.Snapshot(); len(snap.Path) != 3 {
		t.Errorf("expected the snapshot to carry the path, got %v", snap.Path)
	}
}

func TestSearcher_Exhausted(t *testing.T) {
	g := mustParse(t, ".#.")
	s, err := NewSearcher(g, grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 0, Col: 2})
	if err != nil {
		t.Fatalf("NewSearcher() failed: %v", err)
	}

	result := s.Run()
	if s.State() != Exhausted {
		t.Errorf("expected Exhausted, got %v", s.State())
	}
	if result.Found || len(result.Path) != 0 {
		t.Errorf("expected an empty result, got %+v", result)
	}
}

func TestSearcher_ExpandsEachCellOnce(t *testing.T) {
	g := mustParse(t,
		"....",
		"....",
	)
	s, err := NewSearcher(g, grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 1, Col: 3})
	if err != nil {
		t.Fatalf("NewSearcher() failed: %v", err)
	}

	result := s.Run()
	if !result.Found || result.Cost != 4 {
		t.Fatalf("expected a 4-move path, got %+v", result)
	}

	seen := make(map[grid.Cell]bool)
	for _, c := range s.Trace() {
		if seen[c] {
			t.Errorf("cell %v expanded twice", c)
		}
		seen[c] = true
	}
	if result.Steps < result.Expanded {
		t.Errorf("steps (%d) cannot be fewer than expansions (%d)", result.Steps, result.Expanded)
	}
}

func TestSearcher_SkipsStaleEntries(t *testing.T) {
	// (3,2) is queued at g=5 from (2,2) and improved to g=3 through (3,1)
	// before it is popped, leaving the older entry behind on the frontier.
	// The same happens to (3,3) and (3,4) further along the bottom row.
	g := mustParse(t,
		"..#...",
		"...##.",
		".#....",
		"......",
	)
	start, goal := grid.Cell{Row: 2, Col: 0}, grid.Cell{Row: 0, Col: 4}

	s, err := NewSearcher(g, start, goal)
	if err != nil {
		t.Fatalf("NewSearcher() failed: %v", err)
	}

	var stale []StepResult
	for !s.State().Terminal() {
		step, err := s.Step()
		if err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
		if step.Stale {
			stale = append(stale, step)
		}
	}

	expected := []struct {
		index int
		cell  grid.Cell
	}{
		{15, grid.Cell{Row: 3, Col: 2}},
		{16, grid.Cell{Row: 3, Col: 3}},
		{18, grid.Cell{Row: 3, Col: 4}},
	}
	if len(stale) != len(expected) {
		t.Fatalf("expected %d stale pops, got %d: %+v", len(expected), len(stale), stale)
	}
	for i, want := range expected {
		got := stale[i]
		if got.Index != want.index || got.Current != want.cell {
			t.Errorf("stale pop %d: expected #%d at %v, got #%d at %v", i, want.index, want.cell, got.Index, got.Current)
		}
		if len(got.Improved) != 0 {
			t.Errorf("stale pop %d must not relax neighbours, got %v", i, got.Improved)
		}
		if got.State != Expanding {
			t.Errorf("stale pop %d: expected Expanding, got %v", i, got.State)
		}
	}

	counts := make(map[grid.Cell]int)
	for _, c := range s.Trace() {
		counts[c]++
	}
	for _, want := range expected {
		if counts[want.cell] != 1 {
			t.Errorf("expected %v to be expanded once, got %d", want.cell, counts[want.cell])
		}
	}

	result := s.Result()
	if !result.Found {
		t.Fatal("expected a path")
	}
	if want := bfsDistance(g, start, goal); result.Cost != want {
		t.Errorf("expected cost %d, got %d", want, result.Cost)
	}
	if result.Steps != 22 || result.Expanded != 19 {
		t.Errorf("expected 22 pops and 19 expansions, got %d and %d", result.Steps, result.Expanded)
	}
	if result.Steps <= result.Expanded {
		t.Errorf("steps (%d) must exceed expansions (%d) when entries go stale", result.Steps, result.Expanded)
	}
	assertValidPath(t, g, result.Path, start, goal)
}

func TestStateText(t *testing.T) {
	for _, state := range []State{Initialized, Expanding, GoalFound, Exhausted} {
		text, err := state.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", state, err)
		}
		var decoded State
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) failed: %v", text, err)
		}
		if decoded != state {
			t.Errorf("expected %v, got %v", state, decoded)
		}
	}

	var s State
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected an error for an unknown state")
	}
}
