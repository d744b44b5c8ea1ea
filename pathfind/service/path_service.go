package service

import (
	"context"
	"time"

	"github.com/wricardo/gridpath/pathfind/config"
	"github.com/wricardo/gridpath/pathfind/grid"
	"github.com/wricardo/gridpath/pathfind/search"
)

// PathService defines all path-finding operations
type PathService interface {
	// One-shot searches
	FindPath(ctx context.Context, req PathRequest) (*PathResult, error)
	BatchFindPaths(ctx context.Context, reqs []PathRequest) ([]*PathResult, error)

	// Stepping sessions
	CreateSession(ctx context.Context, req PathRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	StepSession(ctx context.Context, sessionID string, steps int) (*StepSessionResult, error)
	RunSession(ctx context.Context, sessionID string) (*StepSessionResult, error)
	ResetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	DescribeCell(ctx context.Context, sessionID string, cell grid.Cell) (*CellInfo, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*config.Info, error)
	LoadConfig(ctx context.Context, configName string) (*config.MapConfig, error)
	SaveConfig(ctx context.Context, configName string, cfg *config.MapConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, spec SessionSpec) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles map configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*config.MapConfig, error)
	ListConfigs() ([]*config.Info, error)
	GetDefault() *config.MapConfig
	SaveConfig(name string, cfg *config.MapConfig) error
}

// SessionSpec is everything needed to start a stepping search
type SessionSpec struct {
	ConfigID string
	Config   *config.MapConfig
	Grid     *grid.Grid
	Start    grid.Cell
	Goal     grid.Cell
}

// Session represents an active stepping search
type Session struct {
	ID             string
	ConfigID       string
	Config         *config.MapConfig
	Grid           *grid.Grid
	Searcher       *search.Searcher
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
