// Package tilegraph turns stitching tiles into a directed graph over w×h tile
// codes.
//
// A vertical tile is w×(h+1): its top h rows and its bottom h rows are two
// w×h tiles that may be stacked, so it contributes an edge top→bottom labeled
// S and the reverse edge labeled N. A horizontal tile is (w+1)×h and
// contributes west→east labeled E and east→west labeled W. Nodes are named by
// [tile.Pack] with width w.
//
// Edges are written one per line as (from, ('S', to)).
package tilegraph

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/grid"
	"github.com/matzehuels/ktile/pkg/tile"
)

// Direction labels an edge with the side of the source tile the target is
// attached to.
type Direction byte

const (
	North Direction = 'N'
	East  Direction = 'E'
	South Direction = 'S'
	West  Direction = 'W'
)

// Directions lists every direction in N, E, S, W order.
var Directions = []Direction{North, East, South, West}

// String returns the one-letter name of d.
func (d Direction) String() string { return string(rune(d)) }

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}

// Valid reports whether d is one of N, E, S, W.
func (d Direction) Valid() bool {
	switch d {
	case North, East, South, West:
		return true
	}
	return false
}

// ParseDirection reads a direction letter, optionally quoted: N, 'N' or "N".
func ParseDirection(s string) (Direction, error) {
	s = strings.Trim(strings.TrimSpace(s), `'"`)
	if len(s) != 1 || !Direction(s[0]).Valid() {
		return 0, fmt.Errorf("unknown direction %q", s)
	}
	return Direction(s[0]), nil
}

// Edge connects two tile codes.
type Edge struct {
	From *big.Int
	Dir  Direction
	To   *big.Int
}

// String formats e as (from, ('D', to)).
func (e Edge) String() string {
	return fmt.Sprintf("(%s, ('%s', %s))", e.From, e.Dir, e.To)
}

// key identifies an edge for deduplication.
func (e Edge) key() string {
	return e.From.String() + string(rune(e.Dir)) + e.To.String()
}

// Build derives the edges of the tile graph.
//
// vertical holds w×(h+1) tiles and horizontal holds (w+1)×h tiles. When
// horizontal is nil, the transposes of vertical are used, which is correct
// for square tiles. Duplicate input tiles contribute once. Edges are returned
// with all vertical edges first, each group ordered by the sorted tiles.
//
// A tile with an anchor outside its rectangle is rejected with
// errors.ErrCodeInvalidTile, since its packed code would name another node.
func Build(w, h int, vertical, horizontal []tile.Tile) ([]Edge, error) {
	kind := "horizontal"
	if horizontal == nil {
		kind = "transposed vertical"
		horizontal = make([]tile.Tile, len(vertical))
		for i, t := range vertical {
			horizontal[i] = tile.Transpose(t)
		}
	}
	if err := checkWithin("vertical", vertical, w, h+1); err != nil {
		return nil, err
	}
	if err := checkWithin(kind, horizontal, w+1, h); err != nil {
		return nil, err
	}

	edges := make([]Edge, 0, 2*len(vertical)+2*len(horizontal))
	for _, t := range distinct(vertical) {
		top, bottom := split(t, func(p grid.Point) bool { return p.Y < h }, func(p grid.Point) bool { return p.Y > 0 }, grid.Pt(0, -1))
		from, to := tile.Pack(top, w), tile.Pack(bottom, w)
		edges = append(edges, Edge{From: from, Dir: South, To: to}, Edge{From: to, Dir: North, To: from})
	}
	for _, t := range distinct(horizontal) {
		west, east := split(t, func(p grid.Point) bool { return p.X < w }, func(p grid.Point) bool { return p.X > 0 }, grid.Pt(-1, 0))
		from, to := tile.Pack(west, w), tile.Pack(east, w)
		edges = append(edges, Edge{From: from, Dir: East, To: to}, Edge{From: to, Dir: West, To: from})
	}
	return edges, nil
}

// checkWithin reports the first tile of ts with an anchor outside w×h.
func checkWithin(kind string, ts []tile.Tile, w, h int) error {
	for i, t := range ts {
		if !t.Within(w, h) {
			return errors.New(errors.ErrCodeInvalidTile, "%s tile %d %v lies outside %dx%d", kind, i+1, t, w, h)
		}
	}
	return nil
}

// split cuts t into the anchors accepted by first and the anchors accepted by
// second, the latter translated by shift.
func split(t tile.Tile, first, second func(grid.Point) bool, shift grid.Point) (a, b tile.Tile) {
	for _, p := range t {
		if first(p) {
			a = append(a, p)
		}
		if second(p) {
			b = append(b, p.Add(shift))
		}
	}
	return tile.New(a...), tile.New(b...)
}

func distinct(ts []tile.Tile) []tile.Tile {
	out := make([]tile.Tile, 0, len(ts))
	for _, t := range ts {
		out = append(out, tile.New(t...))
	}
	tile.Sort(out)
	return compactTiles(out)
}

func compactTiles(ts []tile.Tile) []tile.Tile {
	if len(ts) < 2 {
		return ts
	}
	out := ts[:1]
	for _, t := range ts[1:] {
		if !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}

// Nodes returns the distinct tile codes of edges in first-seen order,
// visiting the source of each edge before its target.
func Nodes(edges []Edge) []*big.Int {
	seen := make(map[string]bool)
	var nodes []*big.Int
	for _, e := range edges {
		for _, n := range []*big.Int{e.From, e.To} {
			if k := n.String(); !seen[k] {
				seen[k] = true
				nodes = append(nodes, n)
			}
		}
	}
	return nodes
}

// Dedup removes repeated edges, keeping the first occurrence.
func Dedup(edges []Edge) []Edge {
	seen := make(map[string]bool, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if k := e.key(); !seen[k] {
			seen[k] = true
			out = append(out, e)
		}
	}
	return out
}
