package tile

import (
	"github.com/matzehuels/ktile/pkg/grid"
)

// bruteColumns enumerates every subset of [0, h) with gaps greater than k.
func bruteColumns(h, k int) []Column {
	var out []Column
	for mask := 0; mask < 1<<h; mask++ {
		var col Column
		for r := 0; r < h; r++ {
			if mask&(1<<r) != 0 {
				col = append(col, r)
			}
		}
		ok := true
		for i := 1; i < len(col); i++ {
			if col[i]-col[i-1] <= k {
				ok = false
				break
			}
		}
		if ok {
			if col == nil {
				col = Column{}
			}
			out = append(out, col)
		}
	}
	return out
}

// bruteTiles enumerates every separated anchor set of the w×h tile whose
// interior cells are all dominated.
func bruteTiles(cfg Config) []Tile {
	cells := cfg.Bounds().Points()
	interior := cfg.Interior().Points()
	var out []Tile
	for mask := 0; mask < 1<<len(cells); mask++ {
		var t Tile
		for i, c := range cells {
			if mask&(1<<i) != 0 {
				t = append(t, c)
			}
		}
		t = New(t...)
		if !t.Separated(cfg.K) {
			continue
		}
		ok := true
		for _, c := range interior {
			if !dominatedBy(t, c, cfg.K) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, t)
		}
	}
	Sort(out)
	return out
}

func dominatedBy(t Tile, c grid.Point, k int) bool {
	for _, a := range t {
		if grid.Close(a, c, k) {
			return true
		}
	}
	return false
}
