package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is loaded as the default map when present
const DefaultConfigName = "default"

// extensions are tried in order when resolving a config name
var extensions = []string{".json", ".yaml", ".yml"}

// Manager handles map configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *MapConfig
	configs       map[string]*MapConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*MapConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// Dir returns the directory the manager reads from
func (m *Manager) Dir() string {
	return m.configDir
}

// LoadConfig loads a configuration by name. The name may carry a .json,
// .yaml or .yml extension; without one each is tried in that order.
// Qualified and bare names are cached separately.
func (m *Manager) LoadConfig(name string) (*MapConfig, error) {
	id := configID(name)
	if !validName(id) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	key := id
	candidates := extensions
	if ext := filepath.Ext(name); isConfigExt(ext) {
		key = id + ext
		candidates = []string{ext}
	}

	m.mu.RLock()
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	for _, ext := range candidates {
		path := filepath.Join(m.configDir, id+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		config, err := decode(data, ext)
		if err != nil {
			return nil, err
		}
		m.configs[key] = config
		return config, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, id)
}

// ListConfigs returns information about all valid configurations in the
// directory. Files that fail to parse or validate are skipped.
func (m *Manager) ListConfigs() ([]*Info, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*Info
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !isConfigExt(filepath.Ext(entry.Name())) {
			continue
		}

		id := configID(entry.Name())
		if seen[id] {
			continue
		}

		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			continue
		}
		g, err := config.Grid()
		if err != nil {
			continue
		}
		seen[id] = true

		configs = append(configs, &Info{
			Filename:    entry.Name(),
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Rows:        g.Rows(),
			Cols:        g.Cols(),
			FreeCells:   g.FreeCount(),
		})
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *MapConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached configuration and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*MapConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// SaveConfig validates and writes a configuration. The format follows the
// extension of name and defaults to JSON.
func (m *Manager) SaveConfig(name string, config *MapConfig) error {
	if err := ValidateMapConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id := configID(name)
	if !validName(id) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	ext := filepath.Ext(name)
	if !isConfigExt(ext) {
		ext = ".json"
	}

	var (
		data []byte
		err  error
	)
	if ext == ".json" {
		data, err = json.MarshalIndent(config, "", "  ")
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, id+ext), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	delete(m.configs, id)
	for _, e := range extensions {
		delete(m.configs, id+e)
	}
	m.configs[id+ext] = config
	m.mu.Unlock()

	return nil
}

func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault(createMinimalConfig())
			return nil
		}

		config, err = m.LoadConfig(configs[0].Filename)
		if err != nil {
			m.setDefault(createMinimalConfig())
			return nil
		}
	}

	m.setDefault(config)
	return nil
}

func (m *Manager) setDefault(config *MapConfig) {
	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// LoadFile reads and validates a single map file outside any manager. The
// format follows the file extension.
func LoadFile(path string) (*MapConfig, error) {
	ext := filepath.Ext(path)
	if !isConfigExt(ext) {
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidConfig, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(data, ext)
}

func decode(data []byte, ext string) (*MapConfig, error) {
	var config MapConfig
	var err error
	if ext == ".json" {
		err = json.Unmarshal(data, &config)
	} else {
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ValidateMapConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}

// IsMapFile reports whether name has a map file extension
func IsMapFile(name string) bool {
	return isConfigExt(filepath.Ext(name))
}

func configID(name string) string {
	if ext := filepath.Ext(name); isConfigExt(ext) {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func validName(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

func isConfigExt(ext string) bool {
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// createMinimalConfig is the wall-with-a-gap map used when the directory
// holds no usable configuration
func createMinimalConfig() *MapConfig {
	return &MapConfig{
		Name:        "default",
		Description: "Wall with a single gap on the right",
		Layout: []string{
			"S....",
			".###.",
			".#...",
			".#.#.",
			"...#G",
		},
	}
}
