// Package session provides in-memory storage for stepping searches.
//
// Each session owns one search.Searcher together with the grid and map
// configuration it was created from. Sessions use short 4-character hex
// IDs that are matched case-insensitively; when the short ID space is
// crowded the manager falls back to a UUID.
//
// The manager is safe for concurrent use. It does not serialize access to
// a single session's searcher; the service layer does that.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", service.SessionSpec{
//		ConfigID: "wall_gap",
//		Grid:     g,
//		Start:    grid.Cell{Row: 0, Col: 0},
//		Goal:     grid.Cell{Row: 4, Col: 4},
//	})
//
//	// Drop sessions idle for more than an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
