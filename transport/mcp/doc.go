// Package mcp exposes the pathfinding REST API as Model Context Protocol tools.
//
// The Client is a thin proxy: every tool call becomes one or two HTTP
// requests against a running API server, and the JSON responses are
// formatted as plain text for the agent.
//
// MCP Tools:
//   - find_path, batch_find_paths: one-shot searches on a saved map or inline layout
//   - list_configs: saved maps with their sizes
//   - create_session, get_session, list_sessions, delete_session: stepping sessions
//   - step_session, run_session, reset_session: drive a session's search
//   - describe_cell: one cell as the session's search sees it (h, g, expanded, frontier)
//   - search_instructions: grid conventions and overlay legend
//
// Transport Modes:
//
//	// Stdio
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP, one JSON-RPC message per POST
//	response := client.GetMCPServer().HandleMessage(ctx, body)
//
// Session overlays use S and G for the endpoints, * for the path, + for
// expanded cells and o for cells still on the frontier.
package mcp
