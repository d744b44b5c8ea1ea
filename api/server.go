package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/gridpath/pathfind/config"
	"github.com/wricardo/gridpath/pathfind/grid"
	"github.com/wricardo/gridpath/pathfind/search"
	"github.com/wricardo/gridpath/pathfind/service"
	"github.com/wricardo/gridpath/pathfind/session"
	"github.com/wricardo/gridpath/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.PathService
	hub     *websocket.Hub
	router  *mux.Router
	version string
}

// NewServer creates a new API server. hub may be nil, in which case no
// updates are streamed and /ws is not served.
func NewServer(pathService service.PathService, hub *websocket.Hub) *Server {
	s := &Server{
		service: pathService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// SetVersion sets the version reported by the health endpoint
func (s *Server) SetVersion(version string) {
	s.version = version
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// One-shot searches
	api.HandleFunc("/paths", s.handleFindPath).Methods("POST")
	api.HandleFunc("/paths/batch", s.handleBatchFindPaths).Methods("POST")

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Session stepping
	api.HandleFunc("/sessions/{id}/step", s.handleStepSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/run", s.handleRunSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleResetSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/cells/{row}/{col}", s.handleDescribeCell).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error": message,
		"code":  status,
	})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrMissingEndpoint),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, search.ErrOutOfBounds),
		errors.Is(err, search.ErrBlockedEndpoint),
		errors.Is(err, grid.ErrEmptyGrid),
		errors.Is(err, grid.ErrRaggedGrid),
		errors.Is(err, grid.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrExpansionLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

// decodeBody decodes an optional JSON body; an empty body leaves v untouched
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Search Handlers

func (s *Server) handleFindPath(w http.ResponseWriter, r *http.Request) {
	var req service.PathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.FindPath(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"request":  result.RequestID,
		"config":   result.ConfigID,
		"found":    result.Found,
		"cost":     result.Cost,
		"expanded": result.Expanded,
	}).Info("[PATH]")

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleBatchFindPaths(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Requests []service.PathRequest `json:"requests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := s.service.BatchFindPaths(r.Context(), req.Requests)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
	}
	log.WithFields(log.Fields{"requests": len(results), "failed": failed}).Info("[BATCH]")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"failed":  failed,
		"results": results,
	})
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req service.PathRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.CreateSession(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default)
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(sessionID, websocket.EventSessionDeleted, nil)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

func (s *Server) handleStepSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	req := struct {
		Steps int `json:"steps"`
	}{Steps: 1}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if stepsStr := r.URL.Query().Get("steps"); stepsStr != "" {
		n, err := strconv.Atoi(stepsStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "steps must be an integer")
			return
		}
		req.Steps = n
	}

	result, err := s.service.StepSession(r.Context(), sessionID, req.Steps)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(result.SessionID, websocket.EventStep, result.Steps)
		s.hub.BroadcastSnapshot(result.SessionID, &result.Snapshot)
	}

	log.WithFields(log.Fields{
		"session":  sessionID,
		"executed": result.Executed,
		"state":    result.Snapshot.State,
		"frontier": result.Snapshot.FrontierSize,
	}).Info("[STEP]")

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRunSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.RunSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastSnapshot(result.SessionID, &result.Snapshot)
	}

	fields := log.Fields{"session": sessionID, "executed": result.Executed}
	if result.Result != nil {
		fields["found"] = result.Result.Found
		fields["cost"] = result.Result.Cost
	}
	log.WithFields(fields).Info("[RUN]")

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.ResetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(info.ID, websocket.EventSessionReset, nil)
		s.hub.BroadcastSnapshot(info.ID, &info.Snapshot)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Session reset successfully",
		"session": info,
	})
}

func (s *Server) handleDescribeCell(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	row, rowErr := strconv.Atoi(vars["row"])
	col, colErr := strconv.Atoi(vars["col"])
	if rowErr != nil || colErr != nil {
		respondError(w, http.StatusBadRequest, "row and col must be integers")
		return
	}

	info, err := s.service.DescribeCell(r.Context(), vars["id"], grid.Cell{Row: row, Col: col})
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := mux.Vars(r)["name"]

	cfg, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		config.MapConfig
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	configID := req.ConfigID
	if configID == "" {
		configID = slugify(req.Name)
	}

	if err := s.service.SaveConfig(r.Context(), configID, &req.MapConfig); err != nil {
		respondError(w, statusFor(err), fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": configID,
	})
}

// slugify turns a display name into a config id
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "streaming disabled", http.StatusNotFound)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, info.ID, &info.Snapshot)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.version,
	})
}
