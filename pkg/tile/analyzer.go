package tile

import (
	"github.com/matzehuels/ktile/pkg/grid"
)

// Eligibility is the constraint on one row of the column being appended.
type Eligibility int8

const (
	// Free rows may be marked or not.
	Free Eligibility = iota
	// ForcedAbsent rows are within k of an existing anchor.
	ForcedAbsent
	// ForcedPresent rows must be marked: the interior cell k columns back in
	// the same row has no other chance of being dominated.
	ForcedPresent
	// Conflicting rows are both forced absent and forced present. No column
	// satisfies them, so the branch is dead.
	Conflicting
)

// String returns a short name for e.
func (e Eligibility) String() string {
	switch e {
	case Free:
		return "free"
	case ForcedAbsent:
		return "absent"
	case ForcedPresent:
		return "present"
	case Conflicting:
		return "conflict"
	default:
		return "unknown"
	}
}

// Eligibilities computes the row constraints for the column at x = p.Width,
// given the anchors already placed in columns [0, p.Width).
//
// A row is forced absent when an anchor within k columns lies within
// distance k of it.
//
// A row y is forced present when the lookahead cell (x-k, y) lies in the
// interior and no existing anchor dominates it: its k-diamond reaches column
// x only at (x, y), and every later column is too far away. The check only
// applies once x-k >= k, that is when the new width exceeds 2k.
func Eligibilities(p Partial, cfg Config) []Eligibility {
	x := p.Width
	width := p.Width + 1
	k := cfg.K
	rows := make([]Eligibility, max(cfg.H, 0))

	for _, a := range p.Anchors {
		dx := x - a.X
		if dx > k {
			continue
		}
		for y := max(a.Y-(k-dx), 0); y <= min(a.Y+(k-dx), cfg.H-1); y++ {
			rows[y] = ForcedAbsent
		}
	}

	if width-2*k <= 0 {
		return rows
	}

	lookahead := x - k
	undominated := make(map[int]bool)
	for y := k; y < cfg.H-k; y++ {
		undominated[y] = true
	}
	for _, a := range p.Anchors {
		if len(undominated) == 0 {
			break
		}
		if a.X < width-2*k-1 {
			continue
		}
		for y := range undominated {
			if grid.Close(a, grid.Pt(lookahead, y), k) {
				delete(undominated, y)
			}
		}
	}
	for y := range undominated {
		if rows[y] == ForcedAbsent {
			rows[y] = Conflicting
		} else {
			rows[y] = ForcedPresent
		}
	}
	return rows
}

// Extend returns every admissible one-column extension of p, drawing the new
// column from cols. It is a pure function of its arguments.
//
// A candidate column is admissible when it marks no forced-absent row and
// every forced-present row. Extend returns nil for a dead branch.
func Extend(p Partial, cols []Column, cfg Config) []Partial {
	rows := Eligibilities(p, cfg)
	required := 0
	for _, e := range rows {
		switch e {
		case Conflicting:
			return nil
		case ForcedPresent:
			required++
		}
	}

	var out []Partial
	x := p.Width
	for _, col := range cols {
		if !admissible(col, rows, required) {
			continue
		}
		anchors := make([]grid.Point, len(p.Anchors), len(p.Anchors)+len(col))
		copy(anchors, p.Anchors)
		for _, row := range col {
			anchors = append(anchors, grid.Pt(x, row))
		}
		out = append(out, Partial{Anchors: anchors, Width: p.Width + 1})
	}
	return out
}

// admissible reports whether col avoids every forced-absent row and marks
// all required forced-present rows.
func admissible(col Column, rows []Eligibility, required int) bool {
	marked := 0
	for _, row := range col {
		if row < 0 || row >= len(rows) || rows[row] == ForcedAbsent {
			return false
		}
		if rows[row] == ForcedPresent {
			marked++
		}
	}
	return marked == required
}
