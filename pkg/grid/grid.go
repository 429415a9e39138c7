// Package grid provides the integer-lattice geometry used by tile search:
// points, Manhattan distance, axis-aligned regions and distance diamonds.
package grid

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
)

// Point is a lattice point. X grows to the east (column index), Y grows to
// the south (row index).
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// String formats p as "(x, y)".
func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// MarshalJSON encodes p as the pair [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes the pair [x, y].
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []int
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("point needs 2 coordinates, got %d", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Distance returns the Manhattan distance between p and q.
func Distance(p, q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Close reports whether p and q are within Manhattan distance k.
// Two anchors that are Close violate the separation rule.
func Close(p, q Point, k int) bool {
	return Distance(p, q) <= k
}

// Rect is the half-open region [X0, X1) × [Y0, Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Bounds returns the rectangle [0, w) × [0, h).
func Bounds(w, h int) Rect { return Rect{X1: w, Y1: h} }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// Inset shrinks r by d on every side. The result may be empty.
func (r Rect) Inset(d int) Rect {
	return Rect{X0: r.X0 + d, Y0: r.Y0 + d, X1: r.X1 - d, Y1: r.Y1 - d}
}

// Empty reports whether r contains no points.
func (r Rect) Empty() bool { return r.X0 >= r.X1 || r.Y0 >= r.Y1 }

// Points returns every point of r ordered by X, then Y.
func (r Rect) Points() []Point {
	if r.Empty() {
		return nil
	}
	pts := make([]Point, 0, (r.X1-r.X0)*(r.Y1-r.Y0))
	for x := r.X0; x < r.X1; x++ {
		for y := r.Y0; y < r.Y1; y++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// Diamond returns every point within Manhattan distance k of c, including
// c itself, ordered by X then Y. For k < 0 it returns nil.
func Diamond(c Point, k int) []Point {
	if k < 0 {
		return nil
	}
	pts := make([]Point, 0, 2*k*(k+1)+1)
	for dx := -k; dx <= k; dx++ {
		r := k - abs(dx)
		for dy := -r; dy <= r; dy++ {
			pts = append(pts, Point{X: c.X + dx, Y: c.Y + dy})
		}
	}
	return pts
}

// Compare orders points by X, then Y.
func Compare(a, b Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// Sort sorts pts in place by X, then Y.
func Sort(pts []Point) {
	slices.SortFunc(pts, Compare)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
