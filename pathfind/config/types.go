package config

import (
	"errors"
	"fmt"

	"github.com/wricardo/gridpath/pathfind/grid"
)

// MaxGridSize bounds both dimensions of a map file
const MaxGridSize = 200

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// MapConfig is a named occupancy grid with optional default endpoints.
// Endpoints may be given explicitly or as S and G markers in the layout;
// explicit fields win.
type MapConfig struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Layout      []string   `json:"layout" yaml:"layout"`
	Start       *grid.Cell `json:"start,omitempty" yaml:"start,omitempty"`
	Goal        *grid.Cell `json:"goal,omitempty" yaml:"goal,omitempty"`
}

// Info describes an available map configuration
type Info struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	FreeCells   int    `json:"free_cells"`
}

// Grid parses the layout
func (c *MapConfig) Grid() (*grid.Grid, error) {
	g, _, err := grid.ParseMarkers(c.Layout)
	return g, err
}

// DefaultEndpoints returns the default start and goal, either of which is
// nil when neither the explicit field nor a layout marker provides it
func (c *MapConfig) DefaultEndpoints() (start, goal *grid.Cell, err error) {
	_, markers, err := grid.ParseMarkers(c.Layout)
	if err != nil {
		return nil, nil, err
	}

	if markers.HasStart {
		start = &markers.Start
	}
	if markers.HasGoal {
		goal = &markers.Goal
	}
	if c.Start != nil {
		start = c.Start
	}
	if c.Goal != nil {
		goal = c.Goal
	}
	return start, goal, nil
}

// Endpoints returns the default start and goal. ok is false when either
// one is missing.
func (c *MapConfig) Endpoints() (start, goal grid.Cell, ok bool, err error) {
	s, g, err := c.DefaultEndpoints()
	if err != nil || s == nil || g == nil {
		return start, goal, false, err
	}
	return *s, *g, true, nil
}

// ValidateMapConfig checks that the layout parses into a grid within size
// limits and that any default endpoints are in bounds and free
func ValidateMapConfig(c *MapConfig) error {
	if c == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if c.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	g, err := c.Grid()
	if err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if g.Rows() > MaxGridSize || g.Cols() > MaxGridSize {
		return fmt.Errorf("config validation: grid must be at most %dx%d, got %dx%d",
			MaxGridSize, MaxGridSize, g.Rows(), g.Cols())
	}

	for _, endpoint := range []struct {
		name string
		cell *grid.Cell
	}{
		{"start", c.Start},
		{"goal", c.Goal},
	} {
		if endpoint.cell == nil {
			continue
		}
		if !g.InBounds(*endpoint.cell) {
			return fmt.Errorf("config validation: %s %v is outside the %dx%d grid", endpoint.name, *endpoint.cell, g.Rows(), g.Cols())
		}
		if !g.IsFree(*endpoint.cell) {
			return fmt.Errorf("config validation: %s %v is blocked", endpoint.name, *endpoint.cell)
		}
	}

	return nil
}
