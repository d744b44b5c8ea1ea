// Command gridpath solves, analyzes and validates grid maps from the
// command line without running the server.
//
//	gridpath solve maze
//	gridpath solve --layout-file room.txt --start 0,0 --goal 4,7
//	gridpath analyze
//	gridpath validate configs
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

const version = "1.0.0"

func newApp() *cli.Command {
	configDirFlag := &cli.StringFlag{
		Name:    "config-dir",
		Aliases: []string{"d"},
		Value:   "configs",
		Usage:   "directory containing map configurations",
		Sources: cli.EnvVars("CONFIG_DIR"),
	}

	return &cli.Command{
		Name:    "gridpath",
		Usage:   "shortest paths on 2D occupancy grids",
		Version: version,
		Flags: []cli.Flag{
			configDirFlag,
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable coloured output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("no-color") {
				color.NoColor = true
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "find a shortest path on a saved map or a layout file",
				ArgsUsage: "[MAP]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "layout-file", Aliases: []string{"f"}, Usage: "read the grid from a text file, one row per line"},
					&cli.StringFlag{Name: "start", Aliases: []string{"s"}, Usage: "start cell as row,col (overrides the map)"},
					&cli.StringFlag{Name: "goal", Aliases: []string{"g"}, Usage: "goal cell as row,col (overrides the map)"},
					&cli.BoolFlag{Name: "trace", Usage: "mark expanded cells and list the expansion order"},
					&cli.BoolFlag{Name: "json", Usage: "print the result as JSON"},
				},
				Action: solveAction,
			},
			{
				Name:      "analyze",
				Usage:     "report size, connectivity and solvability of maps",
				ArgsUsage: "[MAP...]",
				Action:    analyzeAction,
			},
			{
				Name:      "validate",
				Usage:     "check every map file in a directory",
				ArgsUsage: "[DIR]",
				Action:    validateAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}
