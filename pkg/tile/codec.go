package tile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/grid"
)

// Pack encodes t as the integer sum of 2^(x + y·w) over its anchors; the
// code of the empty tile is 0.
//
// Anchors must lie in [0, w) × [0, ∞). Callers holding untrusted tiles check
// [Tile.Within] first: an anchor with x ≥ w aliases onto another cell, and a
// negative bit index panics.
func Pack(t Tile, w int) *big.Int {
	code := new(big.Int)
	for _, p := range t {
		code.SetBit(code, p.X+p.Y*w, 1)
	}
	return code
}

// Unpack decodes a code produced by Pack for width w.
func Unpack(code *big.Int, w int) Tile {
	if w <= 0 || code.Sign() <= 0 {
		return Tile{}
	}
	var t Tile
	for i := 0; i < code.BitLen(); i++ {
		if code.Bit(i) == 1 {
			t = append(t, grid.Pt(i%w, i/w))
		}
	}
	return New(t...)
}

// Transpose swaps the axes of t.
func Transpose(t Tile) Tile {
	out := make([]grid.Point, len(t))
	for i, p := range t {
		out[i] = grid.Pt(p.Y, p.X)
	}
	return New(out...)
}

// emptySet is the text form of a tile without anchors.
const emptySet = "set()"

// String formats t as a point set, e.g. {(0, 0), (2, 1)}.
func (t Tile) String() string {
	if len(t) == 0 {
		return emptySet
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range t {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes t as a list of [x, y] pairs. The empty tile encodes
// as [] whether or not the slice is nil.
func (t Tile) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]grid.Point(t))
}

// Parse reads one tile in the format produced by [Tile.String]. Both set()
// and {} denote the empty tile.
func Parse(s string) (Tile, error) {
	s = strings.TrimSpace(s)
	if s == emptySet || s == "{}" {
		return Tile{}, nil
	}
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("expected a point set in braces")
	}
	body := s[1 : len(s)-1]

	var pts []grid.Point
	for {
		body = strings.TrimLeft(body, " \t,")
		if body == "" {
			break
		}
		if body[0] != '(' {
			return nil, fmt.Errorf("expected '(' at %q", body)
		}
		end := strings.IndexByte(body, ')')
		if end < 0 {
			return nil, fmt.Errorf("unterminated point %q", body)
		}
		p, err := parsePoint(body[1:end])
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
		body = body[end+1:]
	}
	return New(pts...), nil
}

func parsePoint(s string) (grid.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Point{}, fmt.Errorf("point %q needs two coordinates", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Point{}, fmt.Errorf("bad x coordinate in %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Point{}, fmt.Errorf("bad y coordinate in %q", s)
	}
	return grid.Pt(x, y), nil
}

// WriteSet writes tiles one per line.
func WriteSet(w io.Writer, tiles []Tile) error {
	bw := bufio.NewWriter(w)
	for _, t := range tiles {
		bw.WriteString(t.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadSet reads tiles written by [WriteSet]. Blank lines and lines starting
// with '#' are skipped. Parse failures carry the line number.
func ReadSet(r io.Reader) ([]Tile, error) {
	var tiles []Tile
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		t, err := Parse(text)
		if err != nil {
			return nil, errors.AtLine(errors.ErrCodeInvalidTile, line, text, err)
		}
		tiles = append(tiles, t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tiles, nil
}
