// Package service provides the path-finding operations shared by the REST
// API, the MCP tool server and the CLI.
//
// The service package implements:
//   - One-shot searches on inline layouts or named maps
//   - Concurrent batches of independent searches
//   - Stepping sessions that advance a search one frontier pop at a time
//   - Map configuration listing, loading and saving
//
// Core Interfaces:
//
// PathService is the main service interface. SessionManager stores
// stepping sessions and ConfigManager loads map configurations; both are
// implemented by the session and config packages.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	pathService := service.NewPathService(sessionMgr, configMgr)
//
//	result, err := pathService.FindPath(ctx, service.PathRequest{
//		ConfigID: "wall_gap",
//		Start:    &grid.Cell{Row: 0, Col: 0},
//		Goal:     &grid.Cell{Row: 4, Col: 4},
//	})
//
// Sessions:
//
// A session owns one search.Searcher. StepSession performs a bounded
// number of pops and RunSession finishes the search. Session calls are
// serialized by the service, so concurrent callers observe whole steps.
package service
