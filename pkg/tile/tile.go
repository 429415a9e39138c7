package tile

import (
	"slices"

	"github.com/matzehuels/ktile/pkg/grid"
)

// Tile is the sorted, duplicate-free anchor set of a finished tile.
type Tile []grid.Point

// New builds a tile from pts, sorting and removing duplicates.
func New(pts ...grid.Point) Tile {
	t := make(Tile, len(pts))
	copy(t, pts)
	grid.Sort(t)
	return slices.Compact(t)
}

// Has reports whether p is an anchor of t.
func (t Tile) Has(p grid.Point) bool {
	_, ok := slices.BinarySearchFunc(t, p, grid.Compare)
	return ok
}

// Within reports whether every anchor lies inside the w×h rectangle.
func (t Tile) Within(w, h int) bool {
	b := grid.Bounds(w, h)
	for _, p := range t {
		if !b.Contains(p) {
			return false
		}
	}
	return true
}

// Separated reports whether every two anchors are more than k apart.
func (t Tile) Separated(k int) bool {
	for i, p := range t {
		for _, q := range t[i+1:] {
			if q.X-p.X > k {
				break // t is sorted by X
			}
			if grid.Close(p, q, k) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether t and u hold the same anchors.
func (t Tile) Equal(u Tile) bool {
	return slices.Equal(t, u)
}

// Compare orders tiles lexicographically by their sorted anchors.
func Compare(a, b Tile) int {
	return slices.CompareFunc(a, b, grid.Compare)
}

// Sort sorts tiles in place.
func Sort(ts []Tile) {
	slices.SortFunc(ts, Compare)
}

// Partial is a tile under construction: the anchors of its first Width
// columns. Partials are never modified after creation; every extension
// allocates a fresh anchor slice.
type Partial struct {
	Anchors []grid.Point
	Width   int
}

// Seed places col at x = 0 as a one-column partial tile.
func Seed(col Column) Partial {
	anchors := make([]grid.Point, len(col))
	for i, row := range col {
		anchors[i] = grid.Pt(0, row)
	}
	return Partial{Anchors: anchors, Width: 1}
}

// Tile returns the anchors of p as a Tile. Anchors are appended column by
// column in row order, so they are already sorted.
func (p Partial) Tile() Tile {
	return Tile(slices.Clone(p.Anchors))
}
