package layout

import "testing"

func TestCalculateListHeight(t *testing.T) {
	cfg := DefaultConfig().List

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 24, 17},           // 24 - 2 - 5
		{"large terminal", 50, 43},            // 50 - 2 - 5
		{"small terminal enforces min", 8, 3}, // 8 - 7 = 1, min is 3
		{"terminal smaller than chrome", 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateListHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculateListHeight(%d) = %d, want %d", tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestRowZone(t *testing.T) {
	cfg := DefaultConfig().List

	tests := []struct {
		name  string
		x     int
		depth int
		want  Zone
	}{
		{"first gutter cell", 0, 0, ZoneGutter},
		{"last gutter cell", 1, 3, ZoneGutter},
		{"toggle at depth 0", 2, 0, ZoneToggle},
		{"toggle second cell", 3, 0, ZoneToggle},
		{"title at depth 0", 4, 0, ZoneBody},
		{"indent at depth 2", 3, 2, ZoneBody},
		{"toggle at depth 2", 6, 2, ZoneToggle},
		{"title at depth 2", 8, 2, ZoneBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RowZone(tt.x, tt.depth, cfg); got != tt.want {
				t.Errorf("RowZone(%d, %d) = %v, want %v", tt.x, tt.depth, got, tt.want)
			}
		})
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                            string
		offset, selected, total, height int
		want                            int
	}{
		{"fits", 0, 3, 5, 10, 0},
		{"top", 0, 0, 50, 10, 0},
		{"below viewport scrolls down", 0, 15, 50, 10, 6},
		{"inside viewport stays", 10, 12, 50, 10, 10},
		{"above viewport scrolls up", 10, 5, 50, 10, 5},
		{"stale offset clamps", 45, 49, 50, 10, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrollOffset(tt.offset, tt.selected, tt.total, tt.height); got != tt.want {
				t.Errorf("ScrollOffset(%d, %d, %d, %d) = %d, want %d",
					tt.offset, tt.selected, tt.total, tt.height, got, tt.want)
			}
		})
	}
}
