package grid

import "testing"

func TestReachable(t *testing.T) {
	g, err := Parse([]string{
		"..#..",
		"..#..",
		"###..",
		".....",
	})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	left := g.Reachable(Cell{0, 0})
	if left.Cardinality() != 4 {
		t.Errorf("expected 4 cells reachable from (0,0), got %d", left.Cardinality())
	}
	if left.Contains(Cell{0, 3}) {
		t.Error("(0,3) should not be reachable from (0,0)")
	}

	right := g.Reachable(Cell{0, 3})
	if !right.Contains(Cell{3, 0}) {
		t.Error("(3,0) should be reachable from (0,3)")
	}

	if got := g.Reachable(Cell{2, 0}).Cardinality(); got != 0 {
		t.Errorf("expected empty set from a blocked start, got %d cells", got)
	}
}

func TestConnected(t *testing.T) {
	g, err := Parse([]string{
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if g.Connected(Cell{0, 0}, Cell{2, 2}) {
		t.Error("enclosed centre should not be connected to the corner")
	}
	if !g.Connected(Cell{0, 0}, Cell{4, 4}) {
		t.Error("opposite corners should be connected around the ring")
	}
	if g.Connected(Cell{0, 0}, Cell{1, 1}) {
		t.Error("blocked cell can never be connected")
	}
}

func TestComponents(t *testing.T) {
	g, err := Parse([]string{
		".#.",
		"##.",
		"..#",
	})
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	components := g.Components()
	if len(components) != 3 {
		t.Fatalf("expected 3 components, got %d: %v", len(components), components)
	}

	sizes := []int{len(components[0]), len(components[1]), len(components[2])}
	expected := []int{1, 2, 2}
	for i := range expected {
		if sizes[i] != expected[i] {
			t.Errorf("component %d: expected size %d, got %d", i, expected[i], sizes[i])
		}
	}

	if components[1][0] != (Cell{0, 2}) {
		t.Errorf("expected second component to start at (0,2), got %v", components[1][0])
	}
}
