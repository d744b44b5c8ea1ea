package search

import (
	"context"
	"fmt"

	"github.com/wricardo/gridpath/pathfind/grid"
)

// Result contains the outcome of a search
type Result struct {
	// Path runs from start to goal inclusive; empty when no path exists
	Path []grid.Cell `json:"path"`
	// Cost is the number of moves along Path
	Cost int `json:"cost"`
	// Expanded counts cells whose neighbours were generated, goal included
	Expanded int `json:"expanded"`
	// Steps counts frontier pops, stale entries included
	Steps int         `json:"steps"`
	Found bool        `json:"found"`
	Trace []grid.Cell `json:"trace,omitempty"`
}

// Options defines parameters for a search
type Options struct {
	// MaxExpansions bounds the number of frontier pops; zero means unbounded
	MaxExpansions int
	Trace         bool
}

// Option modifies Options
type Option func(*Options)

// WithMaxExpansions stops the search with ErrExpansionLimit after n pops
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// WithTrace records the expansion order in Result.Trace
func WithTrace() Option {
	return func(o *Options) { o.Trace = true }
}

// Search finds a shortest path from start to goal
func Search(g *grid.Grid, start, goal grid.Cell, options ...Option) (*Result, error) {
	return SearchContext(context.Background(), g, start, goal, options...)
}

// SearchContext is Search with a context checked once per frontier pop
func SearchContext(ctx context.Context, g *grid.Grid, start, goal grid.Cell, options ...Option) (*Result, error) {
	var opts Options
	for _, option := range options {
		option(&opts)
	}

	searcher, err := NewSearcher(g, start, goal)
	if err != nil {
		return nil, err
	}

	for !searcher.State().Terminal() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.MaxExpansions > 0 && searcher.Steps() >= opts.MaxExpansions {
			return nil, fmt.Errorf("%w: %d pops without reaching %v", ErrExpansionLimit, searcher.Steps(), goal)
		}
		searcher.Step()
	}

	result := searcher.Result()
	if opts.Trace {
		result.Trace = searcher.Trace()
	}
	return result, nil
}
