package search

import "errors"

var (
	ErrNilGrid         = errors.New("grid is nil")
	ErrOutOfBounds     = errors.New("endpoint out of bounds")
	ErrBlockedEndpoint = errors.New("endpoint is blocked")
	ErrExpansionLimit  = errors.New("expansion limit reached")
	ErrSearchFinished  = errors.New("search already finished")
)
