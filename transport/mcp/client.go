package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/gridpath/pathfind/config"
	"github.com/wricardo/gridpath/pathfind/grid"
	"github.com/wricardo/gridpath/pathfind/search"
	"github.com/wricardo/gridpath/pathfind/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Pathfinder",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Pathfinder - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Maps are rectangular grids of free (.) and blocked (#) cells. Moves go one
cell up, down, left or right and cost 1. S and G in a layout mark the
default start and goal. Coordinates are (row, col), zero-based, row 0 at the top.

AVAILABLE TOOLS:
- find_path: Shortest path on a saved map or an inline layout
- batch_find_paths: Several searches in one call
- list_configs: List saved maps
- create_session: Start a step-by-step search
- step_session: Advance a session by N frontier pops
- run_session: Run a session to completion
- reset_session: Restart a session from its initial state
- get_session: Show a session with its grid overlay
- list_sessions: List active sessions
- delete_session: Remove a session
- describe_cell: Inspect one cell as the session's search sees it
- search_instructions: Explain the search and the grid overlay symbols`),
	)

	c.registerTools()
}

func endpointProperties(properties map[string]interface{}) map[string]interface{} {
	for _, name := range []string{"start_row", "start_col", "goal_row", "goal_col"} {
		properties[name] = map[string]interface{}{
			"type":        "integer",
			"description": fmt.Sprintf("%s (optional, overrides the map default)", strings.ReplaceAll(name, "_", " ")),
		}
	}
	return properties
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"session_id": map[string]interface{}{
			"type":        "string",
			"description": "Session ID",
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// One-shot searches
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Find a shortest path between two cells. Use config_id for a saved map or layout for an inline grid.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: endpointProperties(map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of a saved map (optional)",
				},
				"layout": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Inline grid rows using . for free, # for blocked, S and G for endpoints (optional)",
				},
				"max_expansions": map[string]interface{}{
					"type":        "integer",
					"description": "Give up after this many frontier pops (optional)",
				},
			}),
		},
	}, c.handleFindPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "batch_find_paths",
		Description: "Run several path searches in one call. Each request takes the same fields as find_path.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"requests": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"id":        map[string]interface{}{"type": "string"},
							"config_id": map[string]interface{}{"type": "string"},
							"layout": map[string]interface{}{
								"type":  "array",
								"items": map[string]interface{}{"type": "string"},
							},
							"start": map[string]interface{}{"type": "object"},
							"goal":  map[string]interface{}{"type": "object"},
						},
					},
					"description": "Search requests; start and goal are {\"row\": r, \"col\": c} objects",
				},
			},
			Required: []string{"requests"},
		},
	}, c.handleBatchFindPaths)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List the saved maps",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a step-by-step search session on a saved map or an inline layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: endpointProperties(map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of a saved map (optional, defaults to the server's default map)",
				},
				"layout": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Inline grid rows (optional)",
				},
			}),
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active search sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get a session's search state with the grid overlay",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: sessionIDProperty(),
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a search session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: sessionIDProperty(),
			Required:   []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Stepping
	stepProperties := sessionIDProperty()
	stepProperties["steps"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of frontier pops to perform (default 1)",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "step_session",
		Description: "Advance a session by popping the frontier N times",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: stepProperties,
			Required:   []string{"session_id"},
		},
	}, c.handleStepSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_session",
		Description: "Run a session until the goal is found or the frontier is empty",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: sessionIDProperty(),
			Required:   []string{"session_id"},
		},
	}, c.handleRunSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_session",
		Description: "Reset a session to its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: sessionIDProperty(),
			Required:   []string{"session_id"},
		},
	}, c.handleResetSession)

	cellProperties := sessionIDProperty()
	cellProperties["row"] = map[string]interface{}{
		"type":        "integer",
		"description": "Row of the cell (0-based, 0 is the top row)",
	}
	cellProperties["col"] = map[string]interface{}{
		"type":        "integer",
		"description": "Column of the cell (0-based, 0 is the left column)",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe one cell: blocked or free, heuristic, best known cost, and whether it is expanded, on the frontier or on the path",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: cellProperties,
			Required:   []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "search_instructions",
		Description: "Explain how the search works and what the grid overlay symbols mean",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSearchInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"].(string); ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Argument helpers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func stringsArg(args map[string]interface{}, key string) []string {
	raw, _ := args[key].([]interface{})
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

// cellArg reads <prefix>_row and <prefix>_col; both or neither must be set
func cellArg(args map[string]interface{}, prefix string) (*grid.Cell, error) {
	row, hasRow := intArg(args, prefix+"_row")
	col, hasCol := intArg(args, prefix+"_col")
	if !hasRow && !hasCol {
		return nil, nil
	}
	if hasRow != hasCol {
		return nil, fmt.Errorf("%s_row and %s_col must be given together", prefix, prefix)
	}
	return &grid.Cell{Row: row, Col: col}, nil
}

func pathRequestFromArgs(args map[string]interface{}) (service.PathRequest, error) {
	req := service.PathRequest{}
	req.ConfigID, _ = args["config_id"].(string)
	req.Layout = stringsArg(args, "layout")
	if n, ok := intArg(args, "max_expansions"); ok {
		req.MaxExpansions = n
	}

	var err error
	if req.Start, err = cellArg(args, "start"); err != nil {
		return req, err
	}
	if req.Goal, err = cellArg(args, "goal"); err != nil {
		return req, err
	}
	return req, nil
}

// Tool handlers

func (c *Client) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := pathRequestFromArgs(arguments(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	req.Render = true

	var result service.PathResult
	if err := c.apiCall(ctx, "POST", "/api/paths", req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPathResult(&result)), nil
}

func (c *Client) handleBatchFindPaths(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	raw, ok := args["requests"]
	if !ok {
		return mcp.NewToolResultError("requests is required"), nil
	}

	// round-trip through JSON so nested start/goal objects decode into cells
	data, err := json.Marshal(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var reqs []service.PathRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid requests: %v", err)), nil
	}

	var response struct {
		Count   int                   `json:"count"`
		Failed  int                   `json:"failed"`
		Results []*service.PathResult `json:"results"`
	}
	body := map[string]interface{}{"requests": reqs}
	if err := c.apiCall(ctx, "POST", "/api/paths/batch", body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Batch: %d searches, %d failed\n\n", response.Count, response.Failed))
	for i, r := range response.Results {
		label := r.RequestID
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		switch {
		case r.Error != "":
			result.WriteString(fmt.Sprintf("%s: error: %s\n", label, r.Error))
		case r.Found:
			result.WriteString(fmt.Sprintf("%s: %v -> %v cost %d (%d expanded)\n", label, r.Start, r.Goal, r.Cost, r.Expanded))
		default:
			result.WriteString(fmt.Sprintf("%s: %v -> %v no path (%d expanded)\n", label, r.Start, r.Goal, r.Expanded))
		}
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []config.Info
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Maps:\n\n"
	for _, cfg := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Free cells: %d\n\n",
			cfg.ConfigID, cfg.Name, cfg.Description, cfg.Rows, cfg.Cols, cfg.FreeCells)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := pathRequestFromArgs(arguments(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", req, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nMap: %s\n\n%s", session.ID, session.ConfigName, formatSessionInfo(&session))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Map: %s, State: %s, Steps: %d, Created: %s)\n",
			s.ID, s.ConfigName, s.Snapshot.State, s.Snapshot.Steps, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string `json:"message"`
	}
	if err := c.apiCall(ctx, "DELETE", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleStepSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	steps, ok := intArg(args, "steps")
	if !ok {
		steps = 1
	}

	var result service.StepSessionResult
	body := map[string]int{"steps": steps}
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/step", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStepResult(&result)), nil
}

func (c *Client) handleRunSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.StepSessionResult
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/run", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStepResult(&result)), nil
}

func (c *Client) handleResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string               `json:"message"`
		Session *service.SessionInfo `json:"session"`
	}
	if err := c.apiCall(ctx, "POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message
	if response.Session != nil {
		result += "\n\n" + formatSessionInfo(response.Session)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	row, hasRow := intArg(args, "row")
	col, hasCol := intArg(args, "col")
	if !hasRow || !hasCol {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	var info service.CellInfo
	path := fmt.Sprintf("/api/sessions/%s/cells/%d/%d", sessionID, row, col)
	if err := c.apiCall(ctx, "GET", path, nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCellInfo(&info)), nil
}

func (c *Client) handleSearchInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Grid Pathfinder - Instructions

THE GRID:
• Cells are addressed as (row, col), zero-based, row 0 at the top
• . (or 0) is free, # (or 1) is blocked
• S and G in a layout are free cells that set the default start and goal
• Moves go up, down, left or right; each move costs 1; no diagonals

THE SEARCH:
• A* with the Manhattan distance |dr| + |dc| as heuristic
• The frontier is ordered by f = g + h; equal f values pop first-in first-out
• Neighbours are generated right, down, left, up
• Results are optimal: the reported cost is the fewest possible moves

SESSIONS:
• create_session prepares a search with only the start on the frontier
• step_session pops the frontier N times; each pop expands one cell
• run_session finishes the search
• States: initialized -> expanding -> goal_found or exhausted

GRID OVERLAY:
• S start, G goal
• * path cell
• + expanded cell not on the path
• o cell waiting on the frontier

A search that ends "exhausted" proved that no path exists: every cell
reachable from the start was expanded without meeting the goal.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

const symbolFrontier = 'o'

// overlay draws a snapshot over a layout: frontier cells as o, expanded as +, path as *
func overlay(layout []string, snap search.Snapshot) []string {
	g, err := grid.Parse(layout)
	if err != nil {
		return layout
	}

	lines := g.Render(snap.Path, snap.Closed)
	if len(snap.Path) > 0 {
		return lines
	}

	canvas := make([][]rune, len(lines))
	for i, line := range lines {
		canvas[i] = []rune(line)
	}
	for _, cell := range snap.Frontier {
		if g.InBounds(cell) {
			canvas[cell.Row][cell.Col] = symbolFrontier
		}
	}
	for _, endpoint := range []struct {
		cell   grid.Cell
		symbol rune
	}{{snap.Start, grid.SymbolStart}, {snap.Goal, grid.SymbolGoal}} {
		if g.InBounds(endpoint.cell) {
			canvas[endpoint.cell.Row][endpoint.cell.Col] = endpoint.symbol
		}
	}

	for i := range canvas {
		lines[i] = string(canvas[i])
	}
	return lines
}

func formatSnapshot(snap search.Snapshot) string {
	return fmt.Sprintf("State: %s | Start: %v | Goal: %v | Steps: %d | Expanded: %d | Frontier: %d",
		snap.State, snap.Start, snap.Goal, snap.Steps, snap.Expanded, snap.FrontierSize)
}

func formatSessionInfo(session *service.SessionInfo) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("Session: %s\nMap: %s (%s)\nCreated: %s\n",
		session.ID, session.ConfigName, session.ConfigID,
		session.CreatedAt.Format("2006-01-02 15:04:05")))
	result.WriteString(formatSnapshot(session.Snapshot) + "\n")

	if len(session.Layout) > 0 {
		result.WriteString("\n")
		for _, line := range overlay(session.Layout, session.Snapshot) {
			result.WriteString(line + "\n")
		}
	}

	if len(session.Snapshot.Path) > 0 {
		result.WriteString(fmt.Sprintf("\nPath (cost %d): %s\n", len(session.Snapshot.Path)-1, formatCells(session.Snapshot.Path)))
	}
	return result.String()
}

func formatPathResult(result *service.PathResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Map: %s (%dx%d) | Start: %v | Goal: %v\n", result.ConfigID, result.Rows, result.Cols, result.Start, result.Goal))

	if result.Found {
		b.WriteString(fmt.Sprintf("✓ Path found: cost %d, %d cells expanded\n", result.Cost, result.Expanded))
		b.WriteString(fmt.Sprintf("Path: %s\n", formatCells(result.Path)))
	} else {
		b.WriteString(fmt.Sprintf("✗ No path: goal is unreachable (%d cells expanded)\n", result.Expanded))
	}

	if len(result.Rendered) > 0 {
		b.WriteString("\n")
		for _, line := range result.Rendered {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func formatStepResult(result *service.StepSessionResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Session %s: executed %d step(s)", result.SessionID, result.Executed))
	if result.Truncated {
		b.WriteString(fmt.Sprintf(" (capped from %d)", result.Requested))
	}
	b.WriteString("\n")

	// only the tail of long runs
	steps := result.Steps
	const maxListed = 10
	if len(steps) > maxListed {
		b.WriteString(fmt.Sprintf("... %d earlier steps omitted\n", len(steps)-maxListed))
		steps = steps[len(steps)-maxListed:]
	}
	for _, step := range steps {
		b.WriteString(formatStepLine(step) + "\n")
	}

	b.WriteString(formatSnapshot(result.Snapshot) + "\n")

	if result.Done && result.Result != nil {
		if result.Result.Found {
			b.WriteString(fmt.Sprintf("\n🎯 Goal found: cost %d\nPath: %s\n", result.Result.Cost, formatCells(result.Result.Path)))
		} else {
			b.WriteString("\n✗ Frontier exhausted: no path exists\n")
		}
	}
	return b.String()
}

func formatStepLine(step search.StepResult) string {
	if step.Index == 0 {
		return fmt.Sprintf("  frontier empty -> %s", step.State)
	}
	if step.Stale {
		return fmt.Sprintf("  %d. %v skipped (stale entry)", step.Index, step.Current)
	}
	line := fmt.Sprintf("  %d. expand %v", step.Index, step.Current)
	if len(step.Improved) > 0 {
		line += " -> " + formatCells(step.Improved)
	}
	if step.State.Terminal() {
		line += fmt.Sprintf(" [%s]", step.State)
	}
	return line
}

func formatCellInfo(info *service.CellInfo) string {
	if !info.InBounds {
		return fmt.Sprintf("Cell %v is out of bounds", info.Cell)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Cell %v:\n", info.Cell))
	b.WriteString(fmt.Sprintf("State: %s\n", info.State))
	if info.State == "blocked" {
		b.WriteString("Blocked cells are never entered.\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Heuristic (h): %d\n", info.Heuristic))
	if info.GScore != nil {
		b.WriteString(fmt.Sprintf("Best known cost (g): %d\nf = g + h: %d\n", *info.GScore, *info.GScore+info.Heuristic))
	} else {
		b.WriteString("Best known cost (g): not reached yet\n")
	}
	b.WriteString(fmt.Sprintf("Expanded: %v | On frontier: %v | On path: %v\n", info.Expanded, info.OnFrontier, info.OnPath))
	return b.String()
}

func formatCells(cells []grid.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
