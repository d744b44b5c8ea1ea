// Package config loads, lists and saves named map configurations.
//
// A map configuration is a JSON or YAML file in the config directory
// holding a text layout and, optionally, default endpoints:
//
//	{
//	  "name": "Wall with a gap",
//	  "layout": [
//	    "S....",
//	    ".###.",
//	    ".#...",
//	    ".#.#.",
//	    "...#G"
//	  ]
//	}
//
// The same map in YAML, with explicit endpoints instead of markers:
//
//	name: Wall with a gap
//	layout: [".....", ".###.", ".#...", ".#.#.", "...#."]
//	start: {row: 0, col: 0}
//	goal: {row: 4, col: 4}
//
// Configurations are identified by file name without extension. When
// both wall.json and wall.yaml exist, the JSON file wins.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mapConfig, err := manager.LoadConfig("wall_gap")
//	infos, err := manager.ListConfigs()
//
// Loaded configurations are cached until RefreshCache is called.
package config
