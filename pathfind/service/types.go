package service

import (
	"errors"
	"time"

	"github.com/wricardo/gridpath/pathfind/grid"
	"github.com/wricardo/gridpath/pathfind/search"
)

const (
	// MaxBatchSize bounds the number of requests in one batch
	MaxBatchSize = 64
	// MaxStepsPerCall bounds a single StepSession call
	MaxStepsPerCall = 10000
	// InlineConfigID marks sessions and results built from a request layout
	InlineConfigID = "inline"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrMissingEndpoint = errors.New("start and goal are required")
)

// PathRequest describes a search. Either Layout or ConfigID selects the
// grid; with neither, the default map is used. Start and Goal override the
// map's default endpoints.
type PathRequest struct {
	ID            string     `json:"id,omitempty"`
	ConfigID      string     `json:"config_id,omitempty"`
	Layout        []string   `json:"layout,omitempty"`
	Start         *grid.Cell `json:"start,omitempty"`
	Goal          *grid.Cell `json:"goal,omitempty"`
	MaxExpansions int        `json:"max_expansions,omitempty"`
	Trace         bool       `json:"trace,omitempty"`
	Render        bool       `json:"render,omitempty"`
}

// PathResult contains the outcome of a one-shot search
type PathResult struct {
	RequestID string      `json:"request_id"`
	ConfigID  string      `json:"config_id"`
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	Start     grid.Cell   `json:"start"`
	Goal      grid.Cell   `json:"goal"`
	Found     bool        `json:"found"`
	Path      []grid.Cell `json:"path"`
	Cost      int         `json:"cost"`
	Expanded  int         `json:"expanded"`
	Steps     int         `json:"steps"`
	Trace     []grid.Cell `json:"trace,omitempty"`
	Rendered  []string    `json:"rendered,omitempty"`
	// Error is set on failed entries of a batch
	Error string `json:"error,omitempty"`
}

// SessionInfo provides information about a stepping session
type SessionInfo struct {
	ID             string          `json:"id"`
	ConfigID       string          `json:"config_id"`
	ConfigName     string          `json:"config_name"`
	Layout         []string        `json:"layout"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Snapshot       search.Snapshot `json:"snapshot"`
}

// StepSessionResult contains the result of advancing a session
type StepSessionResult struct {
	SessionID string              `json:"session_id"`
	Requested int                 `json:"requested"`
	Executed  int                 `json:"executed"`
	Truncated bool                `json:"truncated,omitempty"`
	Steps     []search.StepResult `json:"steps,omitempty"`
	Snapshot  search.Snapshot     `json:"snapshot"`
	Done      bool                `json:"done"`
	// Result is set once the session reaches a terminal state
	Result *search.Result `json:"result,omitempty"`
}

// CellInfo describes one cell as seen by a session's search
type CellInfo struct {
	Cell       grid.Cell `json:"cell"`
	InBounds   bool      `json:"in_bounds"`
	State      string    `json:"state"`
	Heuristic  int       `json:"heuristic"`
	GScore     *int      `json:"g_score,omitempty"`
	Expanded   bool      `json:"expanded"`
	OnFrontier bool      `json:"on_frontier"`
	OnPath     bool      `json:"on_path"`
}
