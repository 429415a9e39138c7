package tilegraph

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/matzehuels/ktile/pkg/errors"
)

// WriteEdges writes edges one per line.
func WriteEdges(w io.Writer, edges []Edge) error {
	bw := bufio.NewWriter(w)
	for _, e := range edges {
		bw.WriteString(e.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadEdges reads edges written by [WriteEdges]. Blank lines and lines
// starting with '#' are skipped.
func ReadEdges(r io.Reader) ([]Edge, error) {
	var edges []Edge
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := ParseEdge(text)
		if err != nil {
			return nil, errors.AtLine(errors.ErrCodeInvalidEdge, line, text, err)
		}
		edges = append(edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return edges, nil
}

// ParseEdge reads one edge in the (from, ('D', to)) format.
func ParseEdge(s string) (Edge, error) {
	head, tail, err := SplitPair(s)
	if err != nil {
		return Edge{}, err
	}
	from, ok := new(big.Int).SetString(head, 10)
	if !ok || from.Sign() < 0 {
		return Edge{}, fmt.Errorf("bad source code %q", head)
	}
	dir, target, err := SplitPair(tail)
	if err != nil {
		return Edge{}, err
	}
	d, err := ParseDirection(dir)
	if err != nil {
		return Edge{}, err
	}
	to, ok := new(big.Int).SetString(target, 10)
	if !ok || to.Sign() < 0 {
		return Edge{}, fmt.Errorf("bad target code %q", target)
	}
	return Edge{From: from, Dir: d, To: to}, nil
}

// SplitPair splits a parenthesized pair "(a, b)" into its trimmed halves.
// The first comma outside nested parentheses separates the halves.
func SplitPair(s string) (first, second string, err error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", "", fmt.Errorf("expected a parenthesized pair, got %q", s)
	}
	body := s[1 : len(s)-1]
	depth := 0
	for i, c := range body {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				first = strings.TrimSpace(body[:i])
				second = strings.TrimSpace(body[i+1:])
				if first == "" || second == "" {
					return "", "", fmt.Errorf("empty element in %q", s)
				}
				return first, second, nil
			}
		}
	}
	return "", "", fmt.Errorf("expected two elements in %q", s)
}
