package main

import (
	"strings"

	"github.com/fatih/color"

	"github.com/wricardo/gridpath/pathfind/grid"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	failColor   = color.New(color.FgRed)
	warnColor   = color.New(color.FgYellow)

	symbolColors = map[rune]*color.Color{
		grid.SymbolBlocked: color.New(color.FgHiBlack),
		grid.SymbolPath:    color.New(color.FgGreen, color.Bold),
		grid.SymbolVisited: color.New(color.FgYellow),
		grid.SymbolStart:   color.New(color.FgCyan, color.Bold),
		grid.SymbolGoal:    color.New(color.FgMagenta, color.Bold),
	}
)

// colorize wraps each overlay symbol in its colour
func colorize(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		for _, r := range line {
			if c, ok := symbolColors[r]; ok {
				b.WriteString(c.Sprint(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		out[i] = b.String()
	}
	return out
}

// markEndpoints draws S and G over rendered lines
func markEndpoints(lines []string, start, goal grid.Cell) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	for _, endpoint := range []struct {
		cell   grid.Cell
		symbol rune
	}{{start, grid.SymbolStart}, {goal, grid.SymbolGoal}} {
		if endpoint.cell.Row < 0 || endpoint.cell.Row >= len(out) {
			continue
		}
		row := []rune(out[endpoint.cell.Row])
		if endpoint.cell.Col < 0 || endpoint.cell.Col >= len(row) {
			continue
		}
		row[endpoint.cell.Col] = endpoint.symbol
		out[endpoint.cell.Row] = string(row)
	}
	return out
}

func joinCells(cells []grid.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
