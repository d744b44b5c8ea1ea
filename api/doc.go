// Package api provides the HTTP REST API for grid path finding.
//
// Endpoints:
//
// Searches:
//   - POST /api/paths - Run one search
//   - POST /api/paths/batch - Run up to 64 independent searches concurrently
//
// Sessions (stepping searches):
//   - POST /api/sessions - Create a session in the initialized state
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/{id} - Get a session with its search snapshot
//   - DELETE /api/sessions/{id} - Delete a session
//   - POST /api/sessions/{id}/step - Perform {"steps": n} frontier pops
//   - POST /api/sessions/{id}/run - Step until the search finishes
//   - POST /api/sessions/{id}/reset - Restart the search
//   - GET /api/sessions/{id}/cells/{row}/{col} - Describe one cell
//
// Configuration:
//   - GET /api/configs - List available maps
//   - POST /api/configs - Save a map
//   - GET /api/configs/{name} - Get a map
//
// Misc:
//   - GET /api/health - Liveness and version
//   - GET /ws?session={id} - Stream session updates over WebSocket
//
// A search request selects its grid by inline layout or map id and may
// override the map's default endpoints:
//
//	{
//	  "config_id": "wall_gap",
//	  "start": {"row": 0, "col": 0},
//	  "goal": {"row": 4, "col": 4},
//	  "trace": true,
//	  "render": true
//	}
//
// Error Handling:
//
// Errors are returned as JSON with the matching HTTP status code:
//
//	{
//	  "error": "endpoint is blocked: start (1,1)",
//	  "code": 400
//	}
//
// Unknown maps and sessions give 404, invalid grids and endpoints 400, and
// an exhausted max_expansions budget 422.
package api
