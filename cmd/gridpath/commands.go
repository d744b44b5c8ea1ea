package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/gridpath/pathfind/config"
	"github.com/wricardo/gridpath/pathfind/grid"
	"github.com/wricardo/gridpath/pathfind/search"
)

// parseCell reads "row,col"
func parseCell(s string) (grid.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return grid.Cell{}, fmt.Errorf("invalid cell %q, expected row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("invalid row in %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Cell{}, fmt.Errorf("invalid col in %q: %w", s, err)
	}
	return grid.Cell{Row: row, Col: col}, nil
}

// readLayoutFile reads one grid row per line; blank lines are skipped
func readLayoutFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var layout []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		layout = append(layout, line)
	}
	return layout, scanner.Err()
}

// loadMap resolves the map for solve: a layout file, a named map, or the
// directory's default map
func loadMap(cmd *cli.Command) (*config.MapConfig, error) {
	if path := cmd.String("layout-file"); path != "" {
		layout, err := readLayoutFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read layout file: %w", err)
		}
		return &config.MapConfig{Name: filepath.Base(path), Layout: layout}, nil
	}

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return nil, err
	}
	if name := cmd.Args().First(); name != "" {
		return manager.LoadConfig(name)
	}
	return manager.GetDefault(), nil
}

func endpoints(cmd *cli.Command, cfg *config.MapConfig) (grid.Cell, grid.Cell, error) {
	start, goal, err := cfg.DefaultEndpoints()
	if err != nil {
		return grid.Cell{}, grid.Cell{}, err
	}

	for _, override := range []struct {
		flag   string
		target **grid.Cell
	}{{"start", &start}, {"goal", &goal}} {
		value := cmd.String(override.flag)
		if value == "" {
			continue
		}
		c, err := parseCell(value)
		if err != nil {
			return grid.Cell{}, grid.Cell{}, err
		}
		*override.target = &c
	}

	if start == nil || goal == nil {
		return grid.Cell{}, grid.Cell{}, fmt.Errorf("map %q has no start or goal; use --start and --goal", cfg.Name)
	}
	return *start, *goal, nil
}

func solveAction(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	cfg, err := loadMap(cmd)
	if err != nil {
		return err
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}
	start, goal, err := endpoints(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := search.SearchContext(ctx, g, start, goal, search.WithTrace())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if !cmd.Bool("trace") {
			result.Trace = nil
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(out, "%s %s (%dx%d)\n", headerColor.Sprint("Map:"), cfg.Name, g.Rows(), g.Cols())
	fmt.Fprintf(out, "Start %v  Goal %v\n", start, goal)
	if result.Found {
		fmt.Fprintf(out, "%s cost %d, %d cells expanded\n", okColor.Sprint("✓ path found:"), result.Cost, result.Expanded)
	} else {
		fmt.Fprintf(out, "%s %d cells expanded\n", failColor.Sprint("✗ no path:"), result.Expanded)
	}

	var visited []grid.Cell
	if cmd.Bool("trace") {
		visited = result.Trace
	}
	lines := g.Render(result.Path, visited)
	if !result.Found {
		// keep the endpoints visible when there is no path to mark them
		lines = markEndpoints(lines, start, goal)
	}
	fmt.Fprintln(out)
	for _, line := range colorize(lines) {
		fmt.Fprintln(out, line)
	}

	if result.Found {
		fmt.Fprintf(out, "\nPath: %s\n", joinCells(result.Path))
	}
	if cmd.Bool("trace") {
		fmt.Fprintf(out, "Expansion order: %s\n", joinCells(result.Trace))
	}
	return nil
}

// analysis summarizes one map
type analysis struct {
	ID         string
	Name       string
	Rows, Cols int
	Free       int
	Components []int
	HasEnds    bool
	Start      grid.Cell
	Goal       grid.Cell
	Reachable  bool
	Cost       int
	Expanded   int
}

func analyzeMap(ctx context.Context, id string, cfg *config.MapConfig) (*analysis, error) {
	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}

	a := &analysis{ID: id, Name: cfg.Name, Rows: g.Rows(), Cols: g.Cols(), Free: g.FreeCount()}
	for _, component := range g.Components() {
		a.Components = append(a.Components, len(component))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(a.Components)))

	start, goal, ok, err := cfg.Endpoints()
	if err != nil || !ok {
		return a, err
	}
	a.HasEnds, a.Start, a.Goal = true, start, goal
	a.Reachable = g.Connected(start, goal)

	result, err := search.SearchContext(ctx, g, start, goal)
	if err != nil {
		return nil, err
	}
	a.Cost, a.Expanded = result.Cost, result.Expanded
	return a, nil
}

func printAnalysis(out io.Writer, a *analysis) {
	fmt.Fprintf(out, "\n=== %s ===\n", headerColor.Sprint(a.ID))
	fmt.Fprintf(out, "Name: %s\n", a.Name)
	fmt.Fprintf(out, "Grid: %d x %d, %d free, %d blocked\n", a.Rows, a.Cols, a.Free, a.Rows*a.Cols-a.Free)
	fmt.Fprintf(out, "Free regions: %d %v\n", len(a.Components), a.Components)

	if !a.HasEnds {
		fmt.Fprintln(out, "Endpoints: none (supply start and goal per request)")
		return
	}
	fmt.Fprintf(out, "Start %v  Goal %v  Manhattan %d\n", a.Start, a.Goal, search.Manhattan(a.Start, a.Goal))
	if a.Reachable {
		fmt.Fprintf(out, "%s shortest path %d moves, %d of %d free cells expanded\n",
			okColor.Sprint("✅"), a.Cost, a.Expanded, a.Free)
	} else {
		fmt.Fprintf(out, "%s goal is not reachable from start (%d cells expanded)\n", warnColor.Sprint("⚠️"), a.Expanded)
	}
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		infos, err := manager.ListConfigs()
		if err != nil {
			return err
		}
		for _, info := range infos {
			ids = append(ids, info.ConfigID)
		}
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No maps found")
		return nil
	}

	for _, id := range ids {
		cfg, err := manager.LoadConfig(id)
		if err != nil {
			return err
		}
		a, err := analyzeMap(ctx, id, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		printAnalysis(out, a)
	}
	return nil
}

// ValidationResult captures the outcome of validating a single file.
// Notes holds informational lines for valid files.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func validateFile(path string) ValidationResult {
	result := ValidationResult{File: filepath.Base(path), Valid: true}

	cfg, err := config.LoadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	g, err := cfg.Grid()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Notes = append(result.Notes,
		fmt.Sprintf("✓ Name: %s", cfg.Name),
		fmt.Sprintf("✓ Grid: %dx%d, %d free cells", g.Rows(), g.Cols(), g.FreeCount()))

	start, goal, ok, err := cfg.Endpoints()
	switch {
	case err != nil:
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	case !ok:
		result.Notes = append(result.Notes, "• No default endpoints")
	case g.Connected(start, goal):
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Goal %v reachable from start %v", goal, start))
	default:
		result.Notes = append(result.Notes, fmt.Sprintf("⚠ Goal %v is not reachable from start %v", goal, start))
	}

	return result
}

// mapFiles lists the map files in dir in name order
func mapFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && config.IsMapFile(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	dir := cmd.Args().First()
	if dir == "" {
		dir = cmd.String("config-dir")
	}

	files, err := mapFiles(dir)
	if err != nil {
		return fmt.Errorf("failed to list map files: %w", err)
	}

	invalid := 0
	for _, file := range files {
		result := validateFile(file)

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Fprintln(out, okColor.Sprint("✅ VALID"))
			for _, note := range result.Notes {
				fmt.Fprintln(out, "  "+note)
			}
		} else {
			invalid++
			fmt.Fprintln(out, failColor.Sprint("❌ INVALID"))
			for _, e := range result.Errors {
				fmt.Fprintln(out, "  ❌ "+e)
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if invalid > 0 {
		return fmt.Errorf("%d of %d map files are invalid", invalid, len(files))
	}
	fmt.Fprintf(out, "%s\n", okColor.Sprintf("✅ All %d map files are valid!", len(files)))
	return nil
}
