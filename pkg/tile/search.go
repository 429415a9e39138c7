package tile

import (
	"context"
)

// cancelCheckInterval is how many worklist items are processed between
// context checks.
const cancelCheckInterval = 1024

// SearchStats summarizes one run of [Search].
type SearchStats struct {
	Columns    int // size of the column pool
	Expanded   int // partial tiles popped from the worklist
	DeadEnds   int // partial tiles with no admissible extension
	Candidates int // finished tiles
}

// Search grows every admissible w×h tile from the column pool cols, which
// must be the output of Columns(cfg.H, cfg.K).
//
// The worklist is a stack of immutable partial tiles, so memory stays
// proportional to the search depth times the branching factor. Extensions
// that reach width W go straight to the result. Every returned tile satisfies
// the separation rule and dominates its interior; whether its boundary can be
// completed is left to [Verifier].
//
// The result is sorted. The only error is a canceled context.
func Search(ctx context.Context, cfg Config, cols []Column) ([]Tile, SearchStats, error) {
	stats := SearchStats{Columns: len(cols)}
	if cfg.W <= 0 {
		return nil, stats, nil
	}

	stack := make([]Partial, 0, len(cols))
	for _, col := range cols {
		stack = append(stack, Seed(col))
	}

	var finished []Tile
	if cfg.W == 1 {
		for _, p := range stack {
			finished = append(finished, p.Tile())
		}
		stack = nil
	}

	for len(stack) > 0 {
		if stats.Expanded%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stats.Expanded++

		next := Extend(p, cols, cfg)
		if len(next) == 0 {
			stats.DeadEnds++
			continue
		}
		if p.Width+1 == cfg.W {
			for _, n := range next {
				finished = append(finished, n.Tile())
			}
			continue
		}
		stack = append(stack, next...)
	}

	Sort(finished)
	stats.Candidates = len(finished)
	return finished, stats, nil
}
