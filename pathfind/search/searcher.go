package search

import (
	"fmt"

	"github.com/wricardo/gridpath/pathfind/grid"
)

// State is the orchestrator state of a Searcher
type State int

const (
	Initialized State = iota
	Expanding
	GoalFound
	Exhausted
)

var stateNames = map[State]string{
	Initialized: "initialized",
	Expanding:   "expanding",
	GoalFound:   "goal_found",
	Exhausted:   "exhausted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further steps are possible
func (s State) Terminal() bool {
	return s == GoalFound || s == Exhausted
}

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown search state %q", string(text))
}

// StepResult describes a single frontier pop
type StepResult struct {
	// Index is the 1-based pop number; zero when the frontier was already empty
	Index   int       `json:"index"`
	Current grid.Cell `json:"current"`
	// Stale is set when the popped entry was superseded by a cheaper one
	Stale    bool        `json:"stale,omitempty"`
	Improved []grid.Cell `json:"improved,omitempty"`
	State    State       `json:"state"`
}

// Snapshot is a copy of the observable search state
type Snapshot struct {
	Start        grid.Cell   `json:"start"`
	Goal         grid.Cell   `json:"goal"`
	State        State       `json:"state"`
	Steps        int         `json:"steps"`
	Expanded     int         `json:"expanded"`
	FrontierSize int         `json:"frontier_size"`
	Frontier     []grid.Cell `json:"frontier"`
	Closed       []grid.Cell `json:"closed"`
	Path         []grid.Cell `json:"path,omitempty"`
}

// Searcher runs A* one frontier pop at a time
type Searcher struct {
	grid  *grid.Grid
	start grid.Cell
	goal  grid.Cell

	frontier *Frontier
	gScore   map[grid.Cell]int
	cameFrom map[grid.Cell]grid.Cell

	state    State
	steps    int
	expanded []grid.Cell
	path     []grid.Cell
}

// NewSearcher validates the endpoints and returns a searcher in the
// Initialized state with only start on the frontier
func NewSearcher(g *grid.Grid, start, goal grid.Cell) (*Searcher, error) {
	if err := validateEndpoints(g, start, goal); err != nil {
		return nil, err
	}

	s := &Searcher{
		grid:     g,
		start:    start,
		goal:     goal,
		frontier: NewFrontier(),
		gScore:   map[grid.Cell]int{start: 0},
		cameFrom: make(map[grid.Cell]grid.Cell),
		state:    Initialized,
	}
	s.frontier.Push(Manhattan(start, goal), start, 0)

	return s, nil
}

func validateEndpoints(g *grid.Grid, start, goal grid.Cell) error {
	if g == nil {
		return ErrNilGrid
	}
	for _, endpoint := range []struct {
		name string
		cell grid.Cell
	}{{"start", start}, {"goal", goal}} {
		if !g.InBounds(endpoint.cell) {
			return fmt.Errorf("%w: %s %v outside %dx%d grid", ErrOutOfBounds, endpoint.name, endpoint.cell, g.Rows(), g.Cols())
		}
		if !g.IsFree(endpoint.cell) {
			return fmt.Errorf("%w: %s %v", ErrBlockedEndpoint, endpoint.name, endpoint.cell)
		}
	}
	return nil
}

// Step pops one frontier entry and relaxes its neighbours. It returns
// ErrSearchFinished once the searcher is in a terminal state.
func (s *Searcher) Step() (StepResult, error) {
	if s.state.Terminal() {
		return StepResult{State: s.state}, ErrSearchFinished
	}
	s.state = Expanding

	entry, ok := s.frontier.Pop()
	if !ok {
		s.state = Exhausted
		return StepResult{State: s.state}, nil
	}
	s.steps++

	result := StepResult{Index: s.steps, Current: entry.Cell}

	if entry.GScore > s.gScore[entry.Cell] {
		result.Stale = true
		result.State = s.state
		return result, nil
	}

	current := entry.Cell
	s.expanded = append(s.expanded, current)

	if current == s.goal {
		s.state = GoalFound
		s.path = ReconstructPath(s.cameFrom, current)
		result.State = s.state
		return result, nil
	}

	tentative := s.gScore[current] + 1
	for _, neighbor := range Neighbors(s.grid, current) {
		best, seen := s.gScore[neighbor]
		if seen && tentative >= best {
			continue
		}
		s.cameFrom[neighbor] = current
		s.gScore[neighbor] = tentative
		s.frontier.Push(tentative+Manhattan(neighbor, s.goal), neighbor, tentative)
		result.Improved = append(result.Improved, neighbor)
	}

	result.State = s.state
	return result, nil
}

// Run steps until a terminal state is reached
func (s *Searcher) Run() *Result {
	for !s.state.Terminal() {
		s.Step()
	}
	return s.Result()
}

// State returns the current orchestrator state
func (s *Searcher) State() State {
	return s.state
}

// Start returns the start cell
func (s *Searcher) Start() grid.Cell {
	return s.start
}

// Goal returns the goal cell
func (s *Searcher) Goal() grid.Cell {
	return s.goal
}

// Grid returns the grid being searched
func (s *Searcher) Grid() *grid.Grid {
	return s.grid
}

// Steps returns the number of frontier pops so far, stale pops included
func (s *Searcher) Steps() int {
	return s.steps
}

// CostTo returns the best known cost from start to c
func (s *Searcher) CostTo(c grid.Cell) (int, bool) {
	cost, ok := s.gScore[c]
	return cost, ok
}

// Result returns the outcome so far. Path is only populated in GoalFound.
func (s *Searcher) Result() *Result {
	result := &Result{
		Path:     []grid.Cell{},
		Expanded: len(s.expanded),
		Steps:    s.steps,
		Found:    s.state == GoalFound,
	}
	if result.Found {
		result.Path = append(result.Path, s.path...)
		result.Cost = len(s.path) - 1
	}
	return result
}

// Trace returns the expanded cells in expansion order
func (s *Searcher) Trace() []grid.Cell {
	trace := make([]grid.Cell, len(s.expanded))
	copy(trace, s.expanded)
	return trace
}

// Snapshot copies the observable state
func (s *Searcher) Snapshot() Snapshot {
	snap := Snapshot{
		Start:        s.start,
		Goal:         s.goal,
		State:        s.state,
		Steps:        s.steps,
		Expanded:     len(s.expanded),
		FrontierSize: s.frontier.Len(),
		Frontier:     s.frontier.Cells(),
		Closed:       s.Trace(),
	}
	if s.state == GoalFound {
		snap.Path = append([]grid.Cell{}, s.path...)
	}
	return snap
}
