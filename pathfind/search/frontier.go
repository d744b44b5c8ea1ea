package search

import (
	"container/heap"

	"github.com/wricardo/gridpath/pathfind/grid"
)

// Entry is a frontier item
type Entry struct {
	Priority int
	Seq      int
	Cell     grid.Cell
	// GScore is the cost recorded when the entry was pushed
	GScore int
}

type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].Seq < h[j].Seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Frontier is a min-priority queue with FIFO tie-breaking. The same cell may
// be present several times at different priorities.
type Frontier struct {
	items   entryHeap
	nextSeq int
}

// NewFrontier returns an empty frontier
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Push inserts cell with the given priority and recorded g-score
func (f *Frontier) Push(priority int, cell grid.Cell, gScore int) {
	heap.Push(&f.items, Entry{
		Priority: priority,
		Seq:      f.nextSeq,
		Cell:     cell,
		GScore:   gScore,
	})
	f.nextSeq++
}

// Pop removes the entry with the lowest (priority, seq). ok is false when
// the frontier is empty.
func (f *Frontier) Pop() (entry Entry, ok bool) {
	if len(f.items) == 0 {
		return Entry{}, false
	}
	return heap.Pop(&f.items).(Entry), true
}

// Len returns the number of queued entries, stale ones included
func (f *Frontier) Len() int {
	return len(f.items)
}

// Cells returns the distinct cells currently queued
func (f *Frontier) Cells() []grid.Cell {
	seen := make(map[grid.Cell]bool, len(f.items))
	cells := make([]grid.Cell, 0, len(f.items))
	for _, e := range f.items {
		if !seen[e.Cell] {
			seen[e.Cell] = true
			cells = append(cells, e.Cell)
		}
	}
	return cells
}
