package sat

import (
	"context"

	"github.com/crillab/gophersat/solver"

	"github.com/matzehuels/ktile/pkg/errors"
)

// Gophersat solves with github.com/crillab/gophersat.
type Gophersat struct{}

// NewGophersat creates a gophersat-backed solver.
func NewGophersat() *Gophersat { return &Gophersat{} }

// Name returns "gophersat".
func (*Gophersat) Name() string { return BackendGophersat }

// Solve implements [Solver].
func (g *Gophersat) Solve(ctx context.Context, clauses [][]int) (Model, bool, error) {
	maxVar, err := Validate(clauses)
	if err != nil {
		return nil, false, err
	}
	return g.solveValid(ctx, clauses, maxVar)
}

func (*Gophersat) solveValid(ctx context.Context, clauses [][]int, maxVar int) (Model, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if len(clauses) == 0 {
		return Model{}, true, nil
	}

	s := solver.New(solver.ParseSlice(clauses))
	switch s.Solve() {
	case solver.Sat:
		bindings := s.Model()
		model := make(Model, maxVar)
		copy(model, bindings)
		return model, true, nil
	case solver.Unsat:
		return nil, false, nil
	default:
		return nil, false, errors.New(errors.ErrCodeSolverFailure, "gophersat returned an indeterminate result for %d clauses", len(clauses))
	}
}

var (
	_ Solver       = (*Gophersat)(nil)
	_ prevalidated = (*Gophersat)(nil)
)
