// Package labeling assigns integer labels to the nodes of a tile graph so that
// no edge joins a forbidden pair of labels, by reduction to CNF-SAT.
//
// Each node receives Bits consecutive variables holding its label in binary,
// least significant bit first. For every edge (a, d, b) and every forbidden
// pair (x, y) of direction d, one clause states that a is not labeled x or b
// is not labeled y.
//
// Constraint files list one pair per line as ('N', (x, y)). By default the
// listed pairs are the allowed ones and are inverted over directions N and E;
// see [Invert].
package labeling

import (
	"context"
	"math/big"
	"strconv"
	"strings"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/sat"
	"github.com/matzehuels/ktile/pkg/tilegraph"
)

// Problem is a labeling instance with forbidden pairs per direction.
type Problem struct {
	Edges     []tilegraph.Edge
	Forbidden Constraints
	Bits      int
}

// NewProblem builds a problem from a graph and a constraint set. When
// forbidden is false the constraints are the allowed pairs and are inverted.
func NewProblem(edges []tilegraph.Edge, c Constraints, bits int, forbidden bool) (*Problem, error) {
	if err := errors.ValidateBitcount(bits); err != nil {
		return nil, err
	}
	if err := c.Check(bits); err != nil {
		return nil, err
	}
	if !forbidden {
		c = Invert(c, bits)
	}
	return &Problem{Edges: tilegraph.Dedup(edges), Forbidden: c, Bits: bits}, nil
}

// Nodes returns the nodes of the problem in variable order.
func (p *Problem) Nodes() []*big.Int {
	return tilegraph.Nodes(p.Edges)
}

// Encode returns the node order and the CNF clauses of p. Node i owns
// variables i·Bits+1 through (i+1)·Bits.
func (p *Problem) Encode() ([]*big.Int, [][]int) {
	nodes := p.Nodes()
	base := make(map[string]int, len(nodes))
	for i, n := range nodes {
		base[n.String()] = i*p.Bits + 1
	}

	var clauses [][]int
	for _, e := range p.Edges {
		from, to := base[e.From.String()], base[e.To.String()]
		for _, pair := range p.Forbidden[e.Dir] {
			if from == to {
				if pair.From != pair.To {
					continue // a node cannot carry two labels
				}
				clauses = append(clauses, p.notLabel(from, pair.From))
				continue
			}
			clauses = append(clauses, append(p.notLabel(from, pair.From), p.notLabel(to, pair.To)...))
		}
	}
	return nodes, clauses
}

// notLabel returns the literals that together say "the node at base does not
// carry label".
func (p *Problem) notLabel(base, label int) []int {
	lits := make([]int, p.Bits)
	for i := range lits {
		v := base + i
		if label>>i&1 == 1 {
			lits[i] = -v
		} else {
			lits[i] = v
		}
	}
	return lits
}

// Solve finds a labeling. ok is false when none exists.
func (p *Problem) Solve(ctx context.Context, s sat.Solver) (l Labeling, ok bool, err error) {
	nodes, clauses := p.Encode()
	model, ok, err := s.Solve(ctx, clauses)
	if err != nil || !ok {
		return Labeling{}, false, err
	}

	l = Labeling{Nodes: nodes, Labels: make([]int, len(nodes))}
	for i := range nodes {
		base := i*p.Bits + 1
		for b := 0; b < p.Bits; b++ {
			if model.Value(base + b) {
				l.Labels[i] |= 1 << b
			}
		}
	}
	return l, true, nil
}

// Violations returns the edges of p whose endpoint labels form a forbidden
// pair under l.
func (p *Problem) Violations(l Labeling) []tilegraph.Edge {
	labels := l.Map()
	var bad []tilegraph.Edge
	for _, e := range p.Edges {
		pair := Pair{From: labels[e.From.String()], To: labels[e.To.String()]}
		for _, f := range p.Forbidden[e.Dir] {
			if f == pair {
				bad = append(bad, e)
				break
			}
		}
	}
	return bad
}

// Labeling assigns Labels[i] to Nodes[i].
type Labeling struct {
	Nodes  []*big.Int
	Labels []int
}

// Map returns the labeling keyed by decimal node code.
func (l Labeling) Map() map[string]int {
	m := make(map[string]int, len(l.Nodes))
	for i, n := range l.Nodes {
		m[n.String()] = l.Labels[i]
	}
	return m
}

// String formats l as {node: label, ...} in node order.
func (l Labeling) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range l.Nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n.String())
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(l.Labels[i]))
	}
	b.WriteByte('}')
	return b.String()
}
