package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/gridpath/pathfind/config"
	"github.com/wricardo/gridpath/pathfind/grid"
	"github.com/wricardo/gridpath/pathfind/search"
)

// pathServiceImpl implements the PathService interface
type pathServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewPathService creates a new path service instance
func NewPathService(sessions SessionManager, configs ConfigManager) PathService {
	return &pathServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// resolved is a request turned into a concrete grid and endpoints
type resolved struct {
	configID string
	config   *config.MapConfig
	grid     *grid.Grid
	start    grid.Cell
	goal     grid.Cell
}

// resolve picks the grid for a request and fills in endpoints from the
// layout markers or map defaults when the request omits them
func (s *pathServiceImpl) resolve(req PathRequest) (*resolved, error) {
	var (
		cfg      *config.MapConfig
		configID string
	)

	switch {
	case len(req.Layout) > 0:
		cfg = &config.MapConfig{Name: InlineConfigID, Layout: req.Layout}
		configID = InlineConfigID
		// inline grids get the same size limit as map files
		if err := config.ValidateMapConfig(cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	case req.ConfigID != "":
		loaded, err := s.configs.LoadConfig(req.ConfigID)
		if err != nil {
			return nil, s.configNotFound(req.ConfigID, err)
		}
		cfg, configID = loaded, req.ConfigID
	default:
		cfg = s.configs.GetDefault()
		if cfg == nil {
			return nil, fmt.Errorf("%w: no map selected and no default map", ErrInvalidRequest)
		}
		configID = s.getConfigID(cfg.Name)
	}

	g, err := cfg.Grid()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	start, goal, err := cfg.DefaultEndpoints()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.Start != nil {
		start = req.Start
	}
	if req.Goal != nil {
		goal = req.Goal
	}
	if start == nil || goal == nil {
		return nil, fmt.Errorf("%w: map %q has no default for the missing endpoint", ErrMissingEndpoint, configID)
	}

	return &resolved{
		configID: configID,
		config:   cfg,
		grid:     g,
		start:    *start,
		goal:     *goal,
	}, nil
}

// configNotFound adds the available config ids to a not-found error
func (s *pathServiceImpl) configNotFound(name string, err error) error {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return fmt.Errorf("failed to load config %s: %w", name, err)
	}

	availableConfigs, listErr := s.configs.ListConfigs()
	if listErr == nil && len(availableConfigs) > 0 {
		var configIDs []string
		for _, cfg := range availableConfigs {
			configIDs = append(configIDs, cfg.ConfigID)
		}
		return fmt.Errorf("%w: '%s'. Available configs: %v", config.ErrConfigNotFound, name, configIDs)
	}
	return fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", config.ErrConfigNotFound, name)
}

// getConfigID returns the config_id for a display name
func (s *pathServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return config.DefaultConfigName
	}
	return configName
}

// FindPath runs a complete search
func (s *pathServiceImpl) FindPath(ctx context.Context, req PathRequest) (*PathResult, error) {
	r, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	var options []search.Option
	if req.MaxExpansions > 0 {
		options = append(options, search.WithMaxExpansions(req.MaxExpansions))
	}
	if req.Trace || req.Render {
		options = append(options, search.WithTrace())
	}

	result, err := search.SearchContext(ctx, r.grid, r.start, r.goal, options...)
	if err != nil {
		return nil, err
	}

	requestID := req.ID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	out := &PathResult{
		RequestID: requestID,
		ConfigID:  r.configID,
		Rows:      r.grid.Rows(),
		Cols:      r.grid.Cols(),
		Start:     r.start,
		Goal:      r.goal,
		Found:     result.Found,
		Path:      result.Path,
		Cost:      result.Cost,
		Expanded:  result.Expanded,
		Steps:     result.Steps,
	}
	if req.Trace {
		out.Trace = result.Trace
	}
	if req.Render {
		out.Rendered = r.grid.Render(result.Path, result.Trace)
	}

	log.WithFields(log.Fields{
		"request":  requestID,
		"config":   r.configID,
		"found":    result.Found,
		"cost":     result.Cost,
		"expanded": result.Expanded,
	}).Debug("path search finished")

	return out, nil
}

// BatchFindPaths runs independent searches concurrently. Results keep the
// request order; a failed request yields an entry with Error set.
func (s *pathServiceImpl) BatchFindPaths(ctx context.Context, reqs []PathRequest) ([]*PathResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", ErrInvalidRequest)
	}
	if len(reqs) > MaxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds the limit of %d", ErrInvalidRequest, len(reqs), MaxBatchSize)
	}

	results := make([]*PathResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, req := range reqs {
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		g.Go(func() error {
			result, err := s.FindPath(gctx, req)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				results[i] = &PathResult{
					RequestID: req.ID,
					ConfigID:  req.ConfigID,
					Path:      []grid.Cell{},
					Error:     err.Error(),
				}
				return nil
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.WithField("requests", len(reqs)).Debug("batch search finished")
	return results, nil
}

// CreateSession starts a stepping search in the Initialized state
func (s *pathServiceImpl) CreateSession(ctx context.Context, req PathRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create("", SessionSpec{
		ConfigID: r.configID,
		Config:   r.config,
		Grid:     r.grid,
		Start:    r.start,
		Goal:     r.goal,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.WithFields(log.Fields{
		"session": session.ID,
		"config":  r.configID,
		"start":   r.start,
		"goal":    r.goal,
	}).Info("session created")

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *pathServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *pathServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *pathServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// StepSession performs up to steps frontier pops, stopping early when the
// search reaches a terminal state. Zero steps means one.
func (s *pathServiceImpl) StepSession(ctx context.Context, sessionID string, steps int) (*StepSessionResult, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidRequest, steps)
	}
	if steps == 0 {
		steps = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &StepSessionResult{
		SessionID: sess.ID,
		Requested: steps,
		Steps:     make([]search.StepResult, 0),
	}
	if steps > MaxStepsPerCall {
		steps = MaxStepsPerCall
		result.Truncated = true
	}

	if err := advance(ctx, sess.Searcher, steps, result); err != nil {
		return nil, err
	}

	s.finish(sess, result)
	return result, nil
}

// RunSession steps the session until it reaches a terminal state
func (s *pathServiceImpl) RunSession(ctx context.Context, sessionID string) (*StepSessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	before := sess.Searcher.Steps()

	result := &StepSessionResult{SessionID: sess.ID}
	if err := advance(ctx, sess.Searcher, -1, nil); err != nil {
		return nil, err
	}
	result.Executed = sess.Searcher.Steps() - before
	result.Requested = result.Executed

	s.finish(sess, result)
	return result, nil
}

// advance makes up to limit frontier pops, or runs to the end when limit is
// negative. The call that finds the frontier empty is not a pop and is not
// recorded.
func advance(ctx context.Context, searcher *search.Searcher, limit int, result *StepSessionResult) error {
	for popped := 0; limit < 0 || popped < limit; {
		if searcher.State().Terminal() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		step, err := searcher.Step()
		if err != nil {
			return nil
		}
		if step.Index == 0 {
			continue
		}
		popped++
		if result != nil {
			result.Steps = append(result.Steps, step)
			result.Executed++
		}
	}
	return nil
}

func (s *pathServiceImpl) finish(sess *Session, result *StepSessionResult) {
	result.Snapshot = sess.Searcher.Snapshot()
	result.Done = sess.Searcher.State().Terminal()
	if result.Done {
		result.Result = sess.Searcher.Result()
	}

	log.WithFields(log.Fields{
		"session":  sess.ID,
		"executed": result.Executed,
		"state":    result.Snapshot.State,
		"frontier": result.Snapshot.FrontierSize,
	}).Debug("session advanced")
}

// ResetSession discards the session's progress and restarts its search
func (s *pathServiceImpl) ResetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	searcher, err := search.NewSearcher(sess.Grid, sess.Searcher.Start(), sess.Searcher.Goal())
	if err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	sess.Searcher = searcher

	return sessionInfo(sess), nil
}

// DescribeCell reports how the session's search currently sees a cell
func (s *pathServiceImpl) DescribeCell(ctx context.Context, sessionID string, cell grid.Cell) (*CellInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	info := &CellInfo{
		Cell:      cell,
		InBounds:  sess.Grid.InBounds(cell),
		State:     "out_of_bounds",
		Heuristic: search.Manhattan(cell, sess.Searcher.Goal()),
	}
	switch {
	case sess.Grid.IsFree(cell):
		info.State = "free"
	case info.InBounds:
		info.State = "blocked"
	}

	if cost, ok := sess.Searcher.CostTo(cell); ok {
		info.GScore = &cost
	}

	snap := sess.Searcher.Snapshot()
	info.Expanded = containsCell(snap.Closed, cell)
	info.OnFrontier = containsCell(snap.Frontier, cell)
	info.OnPath = containsCell(snap.Path, cell)

	return info, nil
}

// ListConfigs returns the available map configurations
func (s *pathServiceImpl) ListConfigs(ctx context.Context) ([]*config.Info, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a map configuration by id
func (s *pathServiceImpl) LoadConfig(ctx context.Context, configName string) (*config.MapConfig, error) {
	cfg, err := s.configs.LoadConfig(configName)
	if err != nil {
		return nil, s.configNotFound(configName, err)
	}
	return cfg, nil
}

// SaveConfig validates and stores a map configuration
func (s *pathServiceImpl) SaveConfig(ctx context.Context, configName string, cfg *config.MapConfig) error {
	return s.configs.SaveConfig(configName, cfg)
}

func sessionInfo(sess *Session) *SessionInfo {
	info := &SessionInfo{
		ID:             sess.ID,
		ConfigID:       sess.ConfigID,
		Layout:         sess.Grid.Layout(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Snapshot:       sess.Searcher.Snapshot(),
	}
	if sess.Config != nil {
		info.ConfigName = sess.Config.Name
	}
	return info
}

func containsCell(cells []grid.Cell, target grid.Cell) bool {
	for _, c := range cells {
		if c == target {
			return true
		}
	}
	return false
}
