// Package sat provides a narrow CNF-SAT oracle interface and its backends.
//
// Clauses use the DIMACS convention: each clause is a non-empty slice of
// non-zero literals, a positive literal v asserts variable v, a negative
// literal -v asserts its negation. Variables are numbered from 1.
//
// Two backends are provided:
//   - [Gini]: github.com/go-air/gini (default)
//   - [Gophersat]: github.com/crillab/gophersat
//
// Every call to Solve builds a fresh solver instance, so a single Solver
// value may be shared by concurrent goroutines.
//
// # Usage
//
//	s, err := sat.New("gini")
//	model, ok, err := s.Solve(ctx, [][]int{{1, 2}, {-1, -2}})
//	if err != nil {
//	    return err // malformed CNF or solver failure
//	}
//	if ok {
//	    fmt.Println(model.Value(1), model.Value(2))
//	}
package sat

import (
	"context"
	"time"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/observability"
)

// Backend names accepted by [New].
const (
	BackendGini      = "gini"
	BackendGophersat = "gophersat"

	// DefaultBackend is used when no backend is named.
	DefaultBackend = BackendGini
)

// ValidBackends is the set of supported solver backends.
var ValidBackends = map[string]bool{
	BackendGini:      true,
	BackendGophersat: true,
}

// Solver decides satisfiability of a CNF formula.
//
// Solve returns ok=false with a nil error when the formula is unsatisfiable.
// A non-nil error means the oracle itself failed (malformed input, unknown
// result); such errors are fatal to the caller.
type Solver interface {
	Solve(ctx context.Context, clauses [][]int) (model Model, ok bool, err error)
	Name() string
}

// Model is a satisfying assignment. Index i holds the value of variable i+1.
type Model []bool

// Value returns the truth value of variable v. Variables outside the model
// read as false.
func (m Model) Value(v int) bool {
	if v < 1 || v > len(m) {
		return false
	}
	return m[v-1]
}

// True returns the variables assigned true, in ascending order.
func (m Model) True() []int {
	var vars []int
	for i, b := range m {
		if b {
			vars = append(vars, i+1)
		}
	}
	return vars
}

// Satisfies reports whether m satisfies every clause.
func (m Model) Satisfies(clauses [][]int) bool {
	for _, c := range clauses {
		sat := false
		for _, lit := range c {
			if lit > 0 && m.Value(lit) || lit < 0 && !m.Value(-lit) {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

// New returns the backend registered under name. An empty name selects
// [DefaultBackend]. Solve calls on the returned solver are reported to the
// registered observability hooks.
func New(name string) (Solver, error) {
	if name == "" {
		name = DefaultBackend
	}
	var s Solver
	switch name {
	case BackendGini:
		s = NewGini()
	case BackendGophersat:
		s = NewGophersat()
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown solver %q (must be one of: gini, gophersat)", name)
	}
	return Observed(s), nil
}

// ValidateBackend checks that name is a supported backend.
func ValidateBackend(name string) error {
	if name != "" && !ValidBackends[name] {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown solver %q (must be one of: gini, gophersat)", name)
	}
	return nil
}

// Validate checks that every clause is non-empty and free of zero literals.
// It returns the largest variable index, also when the clauses are
// malformed; err then describes the first bad clause.
func Validate(clauses [][]int) (maxVar int, err error) {
	for i, c := range clauses {
		if len(c) == 0 && err == nil {
			err = errors.New(errors.ErrCodeMalformedCNF, "clause %d is empty", i)
		}
		for _, lit := range c {
			if lit == 0 && err == nil {
				err = errors.New(errors.ErrCodeMalformedCNF, "clause %d contains literal 0", i)
			}
			maxVar = max(maxVar, abs(lit))
		}
	}
	return maxVar, err
}

// prevalidated is implemented by backends that can skip Validate when the
// caller already knows the clauses are well formed.
type prevalidated interface {
	solveValid(ctx context.Context, clauses [][]int, maxVar int) (Model, bool, error)
}

type observed struct {
	Solver
}

// Observed wraps s so that every Solve call is reported through
// observability.SAT().
func Observed(s Solver) Solver {
	if _, ok := s.(observed); ok {
		return s
	}
	return observed{Solver: s}
}

func (o observed) Solve(ctx context.Context, clauses [][]int) (model Model, ok bool, err error) {
	start := time.Now()
	vars, err := Validate(clauses)
	if err == nil {
		if p, direct := o.Solver.(prevalidated); direct {
			model, ok, err = p.solveValid(ctx, clauses, vars)
		} else {
			model, ok, err = o.Solver.Solve(ctx, clauses)
		}
	}
	observability.SAT().OnSolve(ctx, o.Name(), vars, len(clauses), ok, time.Since(start), err)
	return model, ok, err
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
