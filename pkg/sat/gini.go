package sat

import (
	"context"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/matzehuels/ktile/pkg/errors"
)

// Gini solves with github.com/go-air/gini.
type Gini struct{}

// NewGini creates a gini-backed solver.
func NewGini() *Gini { return &Gini{} }

// Name returns "gini".
func (*Gini) Name() string { return BackendGini }

// Solve implements [Solver].
func (g *Gini) Solve(ctx context.Context, clauses [][]int) (Model, bool, error) {
	maxVar, err := Validate(clauses)
	if err != nil {
		return nil, false, err
	}
	return g.solveValid(ctx, clauses, maxVar)
}

func (*Gini) solveValid(ctx context.Context, clauses [][]int, maxVar int) (Model, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	g := gini.New()
	for _, c := range clauses {
		for _, lit := range c {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull) // clause terminator
	}

	switch g.Solve() {
	case 1:
		model := make(Model, maxVar)
		for v := 1; v <= maxVar; v++ {
			model[v-1] = g.Value(z.Var(v).Pos())
		}
		return model, true, nil
	case -1:
		return nil, false, nil
	default:
		return nil, false, errors.New(errors.ErrCodeSolverFailure, "gini returned an unknown result for %d clauses", len(clauses))
	}
}

var (
	_ Solver       = (*Gini)(nil)
	_ prevalidated = (*Gini)(nil)
)
