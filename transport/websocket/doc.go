// Package websocket streams stepping-session updates to browser clients.
//
// Clients connect to /ws?session=<id> and receive one JSON message per
// frame:
//
//	{"session_id": "a1b2", "event": "snapshot", "snapshot": {...}}
//
// Events:
//   - snapshot: the search state after a step, run or reset
//   - step: the individual pops performed by a step request
//   - session_reset and session_deleted: lifecycle notices
//
// The Hub owns all connections. Messages go only to clients of the same
// session, and a client whose send buffer fills up is disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.BroadcastSnapshot(sessionID, &snapshot)
package websocket
