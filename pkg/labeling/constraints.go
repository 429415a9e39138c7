package labeling

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/tilegraph"
)

// Pair is an ordered pair of labels: the label of an edge's source and the
// label of its target.
type Pair struct {
	From, To int
}

// String formats p as (from, to).
func (p Pair) String() string { return fmt.Sprintf("(%d, %d)", p.From, p.To) }

// Constraints maps each direction to a set of label pairs. Whether the pairs
// are allowed or forbidden depends on context; [Problem] always holds
// forbidden pairs.
type Constraints map[tilegraph.Direction][]Pair

// Add records pair p for direction d, ignoring duplicates.
func (c Constraints) Add(d tilegraph.Direction, p Pair) {
	if !slices.Contains(c[d], p) {
		c[d] = append(c[d], p)
	}
}

// Len returns the total number of pairs.
func (c Constraints) Len() int {
	n := 0
	for _, ps := range c {
		n += len(ps)
	}
	return n
}

// Invert turns allowed pairs into forbidden pairs over labels [0, 2^bits).
//
// Only directions N and E are produced: every edge labeled S or W has a
// reverse edge labeled N or E, so those two directions carry the whole
// relation. Pairs come out in ascending order.
func Invert(allowed Constraints, bits int) Constraints {
	labels := 1 << bits
	out := make(Constraints)
	for _, d := range []tilegraph.Direction{tilegraph.North, tilegraph.East} {
		ok := make(map[Pair]bool, len(allowed[d]))
		for _, p := range allowed[d] {
			ok[p] = true
		}
		forbidden := make([]Pair, 0, labels*labels-len(ok))
		for a := 0; a < labels; a++ {
			for b := 0; b < labels; b++ {
				if p := (Pair{a, b}); !ok[p] {
					forbidden = append(forbidden, p)
				}
			}
		}
		out[d] = forbidden
	}
	return out
}

// Check verifies that every label fits in bits bits.
func (c Constraints) Check(bits int) error {
	limit := 1 << bits
	for _, d := range sortedDirections(c) {
		for _, p := range c[d] {
			if p.From < 0 || p.From >= limit || p.To < 0 || p.To >= limit {
				return errors.New(errors.ErrCodeInvalidConstraint,
					"constraint %s %s uses a label outside [0, %d)", d, p, limit)
			}
		}
	}
	return nil
}

func sortedDirections(c Constraints) []tilegraph.Direction {
	dirs := make([]tilegraph.Direction, 0, len(c))
	for d := range c {
		dirs = append(dirs, d)
	}
	slices.SortFunc(dirs, func(a, b tilegraph.Direction) int { return cmp.Compare(a, b) })
	return dirs
}

// ReadConstraints reads one constraint per line in the form ('N', (a, b)).
// Blank lines and lines starting with '#' are skipped.
func ReadConstraints(r io.Reader) (Constraints, error) {
	c := make(Constraints)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		d, p, err := parseConstraint(text)
		if err != nil {
			return nil, errors.AtLine(errors.ErrCodeInvalidConstraint, line, text, err)
		}
		c.Add(d, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// WriteConstraints writes c in the format read by [ReadConstraints],
// directions in N, E, S, W order.
func WriteConstraints(w io.Writer, c Constraints) error {
	bw := bufio.NewWriter(w)
	for _, d := range tilegraph.Directions {
		for _, p := range c[d] {
			fmt.Fprintf(bw, "('%s', %s)\n", d, p)
		}
	}
	return bw.Flush()
}

func parseConstraint(s string) (tilegraph.Direction, Pair, error) {
	dir, pair, err := tilegraph.SplitPair(s)
	if err != nil {
		return 0, Pair{}, err
	}
	d, err := tilegraph.ParseDirection(dir)
	if err != nil {
		return 0, Pair{}, err
	}
	a, b, err := tilegraph.SplitPair(pair)
	if err != nil {
		return 0, Pair{}, err
	}
	from, err := strconv.Atoi(a)
	if err != nil {
		return 0, Pair{}, fmt.Errorf("bad label %q", a)
	}
	to, err := strconv.Atoi(b)
	if err != nil {
		return 0, Pair{}, fmt.Errorf("bad label %q", b)
	}
	return d, Pair{From: from, To: to}, nil
}
