package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/gridpath/pathfind/grid"
)

func createTestConfigDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	return dir
}

func createValidConfig() *MapConfig {
	return &MapConfig{
		Name:        "Test Map",
		Description: "Test configuration",
		Layout: []string{
			".....",
			".###.",
			".#...",
			".#.#.",
			"...#.",
		},
		Start: &grid.Cell{Row: 0, Col: 0},
		Goal:  &grid.Cell{Row: 4, Col: 4},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *MapConfig) {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func writeRawFile(t *testing.T, dir, filename, content string) {
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		defaultConfig := createValidConfig()
		defaultConfig.Name = "Default"
		writeConfigFile(t, dir, DefaultConfigName, defaultConfig)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Default" {
			t.Errorf("Expected default config 'Default', got %q", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("empty directory falls back to minimal config", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got error: %v", err)
		}

		def := manager.GetDefault()
		if def == nil {
			t.Fatal("Expected a minimal default config")
		}
		if err := ValidateMapConfig(def); err != nil {
			t.Errorf("Minimal config should be valid: %v", err)
		}
		if _, _, ok, _ := def.Endpoints(); !ok {
			t.Error("Minimal config should carry both endpoints")
		}
	})

	t.Run("first available config becomes default", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		config := createValidConfig()
		config.Name = "Alpha"
		writeConfigFile(t, dir, "alpha", config)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Alpha" {
			t.Errorf("Expected 'Alpha' as default, got %q", manager.GetDefault().Name)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "wall", createValidConfig())
	writeRawFile(t, dir, "open.yaml", `
name: Open field
description: No obstacles
layout:
  - "S..."
  - "...."
  - "...G"
`)
	writeRawFile(t, dir, "short.yml", "name: Short\nlayout: [\"..\"]\n")
	writeRawFile(t, dir, "malformed.json", "{not json")
	writeRawFile(t, dir, "ragged.json", `{"name": "Ragged", "layout": ["...", ".."]}`)
	writeRawFile(t, dir, "blocked_start.json", `{"name": "Blocked", "layout": ["#.."], "start": {"row": 0, "col": 0}}`)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load json config", func(t *testing.T) {
		config, err := manager.LoadConfig("wall")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Test Map" {
			t.Errorf("Expected name 'Test Map', got %q", config.Name)
		}
	})

	t.Run("load with extension", func(t *testing.T) {
		config, err := manager.LoadConfig("wall.json")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Test Map" {
			t.Errorf("Expected name 'Test Map', got %q", config.Name)
		}
	})

	t.Run("load yaml config with markers", func(t *testing.T) {
		config, err := manager.LoadConfig("open")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		start, goal, ok, err := config.Endpoints()
		if err != nil || !ok {
			t.Fatalf("Expected endpoints from markers, got ok=%v err=%v", ok, err)
		}
		if start != (grid.Cell{Row: 0, Col: 0}) || goal != (grid.Cell{Row: 2, Col: 3}) {
			t.Errorf("Unexpected endpoints %v -> %v", start, goal)
		}
	})

	t.Run("load yml config", func(t *testing.T) {
		config, err := manager.LoadConfig("short")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if _, _, ok, _ := config.Endpoints(); ok {
			t.Error("Expected no default endpoints")
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		first, _ := manager.LoadConfig("wall")
		second, _ := manager.LoadConfig("wall")
		if first != second {
			t.Error("Expected the cached pointer on the second load")
		}
	})

	tests := []struct {
		name string
		file string
		want error
	}{
		{"non-existent config", "missing", ErrConfigNotFound},
		{"path traversal", "../secret", ErrConfigNotFound},
		{"ragged layout", "ragged", ErrInvalidConfig},
		{"blocked endpoint", "blocked_start", ErrInvalidConfig},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := manager.LoadConfig(test.file)
			if !errors.Is(err, test.want) {
				t.Errorf("Expected %v, got %v", test.want, err)
			}
		})
	}

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := manager.LoadConfig("malformed")
		if err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}

func TestManager_LoadConfig_Extensions(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "wall", createValidConfig())
	writeRawFile(t, dir, "wall.yaml", "name: Yaml twin\nlayout: [\"..\"]\n")

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		name     string
		expected string
	}{
		{"wall", "Test Map"},
		{"wall.yaml", "Yaml twin"},
		{"wall.json", "Test Map"},
		{"wall", "Test Map"},
		{"wall.yaml", "Yaml twin"},
	}
	for _, test := range tests {
		config, err := manager.LoadConfig(test.name)
		if err != nil {
			t.Fatalf("LoadConfig(%q) failed: %v", test.name, err)
		}
		if config.Name != test.expected {
			t.Errorf("LoadConfig(%q): expected %q, got %q", test.name, test.expected, config.Name)
		}
	}

	updated := createValidConfig()
	updated.Name = "Yaml updated"
	if err := manager.SaveConfig("wall.yaml", updated); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	if config, _ := manager.LoadConfig("wall.yaml"); config == nil || config.Name != "Yaml updated" {
		t.Errorf("Expected the saved YAML map, got %+v", config)
	}
	if config, _ := manager.LoadConfig("wall"); config == nil || config.Name != "Test Map" {
		t.Errorf("Expected the bare name to keep resolving to JSON, got %+v", config)
	}
}

func TestIsMapFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"maze.json", true},
		{"open.yaml", true},
		{"rooms.yml", true},
		{"notes.txt", false},
		{"maze", false},
		{"maze.json.bak", false},
	}
	for _, test := range tests {
		if got := IsMapFile(test.name); got != test.expected {
			t.Errorf("IsMapFile(%q) = %v, expected %v", test.name, got, test.expected)
		}
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "a_wall", createValidConfig())
	writeRawFile(t, dir, "b_open.yaml", "name: Open\nlayout: [\"...\", \"...\"]\n")
	writeRawFile(t, dir, "a_wall.yaml", "name: Shadowed\nlayout: [\".\"]\n")
	writeRawFile(t, dir, "broken.json", "{")
	writeRawFile(t, dir, "notes.txt", "not a config")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d: %+v", len(configs), configs)
	}

	wall := configs[0]
	if wall.ConfigID != "a_wall" || wall.Filename != "a_wall.json" || wall.Name != "Test Map" {
		t.Errorf("Unexpected first entry: %+v", wall)
	}
	if wall.Rows != 5 || wall.Cols != 5 || wall.FreeCells != 18 {
		t.Errorf("Unexpected dimensions: %+v", wall)
	}

	open := configs[1]
	if open.ConfigID != "b_open" || open.Rows != 2 || open.Cols != 3 || open.FreeCells != 6 {
		t.Errorf("Unexpected second entry: %+v", open)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("save json", func(t *testing.T) {
		if err := manager.SaveConfig("saved", createValidConfig()); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
			t.Errorf("Expected saved.json on disk: %v", err)
		}
	})

	t.Run("save yaml and reload from disk", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Yaml Map"
		if err := manager.SaveConfig("saved_yaml.yaml", config); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}

		if err := manager.RefreshCache(); err != nil {
			t.Fatalf("Failed to refresh cache: %v", err)
		}

		loaded, err := manager.LoadConfig("saved_yaml")
		if err != nil {
			t.Fatalf("Failed to reload config: %v", err)
		}
		if loaded == config {
			t.Error("Expected a fresh copy after RefreshCache")
		}
		if loaded.Name != "Yaml Map" || *loaded.Goal != (grid.Cell{Row: 4, Col: 4}) {
			t.Errorf("Unexpected reloaded config: %+v", loaded)
		}
	})

	t.Run("reject invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.Name = ""
		if err := manager.SaveConfig("invalid", config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("reject invalid name", func(t *testing.T) {
		if err := manager.SaveConfig("../escape", createValidConfig()); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_SetDefault(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	config := createValidConfig()
	config.Name = "Other"
	writeConfigFile(t, dir, "other", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("other"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Other" {
		t.Errorf("Expected default 'Other', got %q", manager.GetDefault().Name)
	}

	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestValidateMapConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*MapConfig)
		wantErr bool
	}{
		{"valid config", func(c *MapConfig) {}, false},
		{"missing name", func(c *MapConfig) { c.Name = "" }, true},
		{"empty layout", func(c *MapConfig) { c.Layout = nil }, true},
		{"invalid symbol", func(c *MapConfig) { c.Layout[0] = "..x.." }, true},
		{"start out of bounds", func(c *MapConfig) { c.Start = &grid.Cell{Row: 5, Col: 0} }, true},
		{"goal blocked", func(c *MapConfig) { c.Goal = &grid.Cell{Row: 1, Col: 1} }, true},
		{"endpoints omitted", func(c *MapConfig) { c.Start, c.Goal = nil, nil }, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createValidConfig()
			test.modify(config)
			err := ValidateMapConfig(config)
			if (err != nil) != test.wantErr {
				t.Errorf("ValidateMapConfig() error = %v, wantErr %v", err, test.wantErr)
			}
		})
	}

	if err := ValidateMapConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	writeConfigFile(t, dir, "shared", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadConfig("shared"); err != nil {
				errs <- err
			}
			manager.GetDefault()
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent load failed: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	tempDir := createTestConfigDir(t)
	defer os.RemoveAll(tempDir)

	writeConfigFile(t, tempDir, "valid", createValidConfig())
	writeRawFile(t, tempDir, "lane.yaml", "name: Lane\nlayout:\n  - \"S..G\"\n")
	writeRawFile(t, tempDir, "broken.json", `{"name": "Broken", "layout": ["..", "..."]}`)
	writeRawFile(t, tempDir, "notes.txt", "...")

	tests := []struct {
		file    string
		wantErr error
		name    string
	}{
		{"valid.json", nil, "Test Map"},
		{"lane.yaml", nil, "Lane"},
		{"broken.json", ErrInvalidConfig, ""},
		{"notes.txt", ErrInvalidConfig, ""},
	}

	for _, test := range tests {
		t.Run(test.file, func(t *testing.T) {
			cfg, err := LoadFile(filepath.Join(tempDir, test.file))
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Errorf("Expected %v, got %v", test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			if cfg.Name != test.name {
				t.Errorf("Expected name %q, got %q", test.name, cfg.Name)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(tempDir, "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
