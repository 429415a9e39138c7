package tile

import (
	"context"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/grid"
	"github.com/matzehuels/ktile/pkg/sat"
)

// Reason explains a verdict.
type Reason string

const (
	// ReasonNoExposure: every cell is dominated by an in-tile anchor.
	ReasonNoExposure Reason = "no-exposure"
	// ReasonSatisfiable: phantom anchors can dominate every exposed cell.
	ReasonSatisfiable Reason = "satisfiable"
	// ReasonUndominated: some exposed cell has no phantom candidate.
	ReasonUndominated Reason = "undominated"
	// ReasonInteriorGap: some cell farther than k from the boundary is
	// undominated, so no phantom can ever reach it.
	ReasonInteriorGap Reason = "interior-gap"
	// ReasonUnsatisfiable: no consistent phantom placement exists.
	ReasonUnsatisfiable Reason = "unsatisfiable"
)

// Verdict is the outcome of verifying one tile.
type Verdict struct {
	Accepted bool         `json:"accepted"`
	Reason   Reason       `json:"reason"`
	Exposed  []grid.Point `json:"exposed,omitempty"`  // undominated cells within k of the boundary
	Gaps     []grid.Point `json:"gaps,omitempty"`     // undominated interior cells
	Phantoms []grid.Point `json:"phantoms,omitempty"` // external anchors of one completion
	Vars     int          `json:"vars"`
	Clauses  int          `json:"clauses"`
}

// Instance is the CNF encoding of the completability question for one tile.
type Instance struct {
	// Exposed lists the undominated cells within k of the boundary, sorted.
	Exposed []grid.Point
	// Gaps lists the undominated cells farther than k from the boundary.
	Gaps []grid.Point
	// Candidates[i] lists the phantom candidates of Exposed[i].
	Candidates [][]grid.Point
	// Vars maps variable v to the phantom position Vars[v-1].
	Vars []grid.Point
	// Clauses holds one at-least-one clause per exposed cell followed by one
	// not-both clause per pair of candidates within distance k.
	Clauses [][]int
}

// Encode builds the completability instance of t.
//
// Exposed cells are the cells of t within k of the boundary and not within
// k of any anchor. A phantom candidate of an exposed cell is a point outside
// the tile within k of the cell and farther than k from every in-tile
// anchor. Undominated cells deeper inside have no outside neighbors within
// k; they are collected as Gaps instead.
//
// ok is false when t has gaps or some exposed cell has no candidate at all;
// the returned instance then carries no variables or clauses.
func Encode(t Tile, cfg Config) (inst *Instance, ok bool) {
	k := cfg.K
	bounds := cfg.Bounds()

	dominated := make(map[grid.Point]bool)
	excluded := make(map[grid.Point]bool)
	for _, a := range t {
		for _, p := range grid.Diamond(a, k) {
			if bounds.Contains(p) {
				dominated[p] = true
			} else {
				excluded[p] = true
			}
		}
	}

	inst = &Instance{}
	for _, c := range bounds.Points() {
		switch {
		case dominated[c]:
		case c.X < k || c.Y < k || c.X >= cfg.W-k || c.Y >= cfg.H-k:
			inst.Exposed = append(inst.Exposed, c)
		default:
			inst.Gaps = append(inst.Gaps, c)
		}
	}
	if len(inst.Gaps) > 0 {
		return inst, false
	}
	if len(inst.Exposed) == 0 {
		return inst, true
	}

	index := make(map[grid.Point]int)
	inst.Candidates = make([][]grid.Point, len(inst.Exposed))
	for i, e := range inst.Exposed {
		var cands []grid.Point
		for _, p := range grid.Diamond(e, k) {
			if bounds.Contains(p) || excluded[p] {
				continue
			}
			cands = append(cands, p)
			index[p] = 0
		}
		if len(cands) == 0 {
			inst.Candidates = inst.Candidates[:i+1]
			return inst, false
		}
		inst.Candidates[i] = cands
	}

	inst.Vars = make([]grid.Point, 0, len(index))
	for p := range index {
		inst.Vars = append(inst.Vars, p)
	}
	grid.Sort(inst.Vars)
	for i, p := range inst.Vars {
		index[p] = i + 1
	}

	for _, cands := range inst.Candidates {
		clause := make([]int, len(cands))
		for j, p := range cands {
			clause[j] = index[p]
		}
		inst.Clauses = append(inst.Clauses, clause)
	}
	for i, p := range inst.Vars {
		for _, q := range grid.Diamond(p, k) {
			if j, ok := index[q]; ok && j > i+1 {
				inst.Clauses = append(inst.Clauses, []int{-(i + 1), -j})
			}
		}
	}
	return inst, true
}

// Verifier decides completability of finished tiles.
//
// A Verifier holds no mutable state; Verify may be called concurrently as
// long as the Solver allows it (all backends in package sat do).
type Verifier struct {
	Config Config
	Solver sat.Solver
}

// NewVerifier creates a verifier for tiles of configuration cfg.
// A nil solver selects the default gini backend.
func NewVerifier(cfg Config, s sat.Solver) *Verifier {
	if s == nil {
		s = sat.NewGini()
	}
	return &Verifier{Config: cfg, Solver: s}
}

// Verify reports whether t can be completed at its boundary.
//
// Tiles without exposed cells or gaps are accepted without consulting the
// solver. Tiles with a gap, or with an exposed cell that no phantom can
// dominate, are rejected likewise. Otherwise the instance is solved; on acceptance Phantoms lists
// the external anchors of the model found. Rejections are verdicts, not
// errors; the error is non-nil only when the solver fails.
func (v *Verifier) Verify(ctx context.Context, t Tile) (Verdict, error) {
	inst, ok := Encode(t, v.Config)
	verdict := Verdict{Exposed: inst.Exposed, Gaps: inst.Gaps}
	switch {
	case len(inst.Gaps) > 0:
		verdict.Reason = ReasonInteriorGap
		return verdict, nil
	case len(inst.Exposed) == 0:
		verdict.Accepted = true
		verdict.Reason = ReasonNoExposure
		return verdict, nil
	case !ok:
		verdict.Reason = ReasonUndominated
		return verdict, nil
	}

	verdict.Vars = len(inst.Vars)
	verdict.Clauses = len(inst.Clauses)
	model, satisfiable, err := v.Solver.Solve(ctx, inst.Clauses)
	if err != nil {
		if ctx.Err() != nil || errors.GetCode(err) != "" {
			return verdict, err
		}
		return verdict, errors.Wrap(errors.ErrCodeSolverFailure, err, "solve %d clauses", len(inst.Clauses))
	}
	if !satisfiable {
		verdict.Reason = ReasonUnsatisfiable
		return verdict, nil
	}

	verdict.Accepted = true
	verdict.Reason = ReasonSatisfiable
	for _, id := range model.True() {
		verdict.Phantoms = append(verdict.Phantoms, inst.Vars[id-1])
	}
	return verdict, nil
}
