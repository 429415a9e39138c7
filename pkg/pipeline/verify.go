package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/observability"
	"github.com/matzehuels/ktile/pkg/sat"
	"github.com/matzehuels/ktile/pkg/tile"
)

// VerifyAll verifies tiles on at most workers goroutines. Verdicts are
// returned in input order. The first solver failure or context cancellation
// aborts the remaining work.
func VerifyAll(ctx context.Context, v *tile.Verifier, tiles []tile.Tile, workers int) ([]tile.Verdict, error) {
	verdicts := make([]tile.Verdict, len(tiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, t := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			start := time.Now()
			verdict, err := v.Verify(gctx, t)
			if err != nil {
				return fmt.Errorf("tile %v: %w", t, err)
			}
			observability.Pipeline().OnVerifyComplete(gctx, verdict.Accepted, string(verdict.Reason), time.Since(start))
			verdicts[i] = verdict
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A canceled parent may have stopped the loop before any task failed.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

// Accepted returns the tiles whose verdict accepts them, preserving order.
func Accepted(tiles []tile.Tile, verdicts []tile.Verdict) []tile.Tile {
	out := make([]tile.Tile, 0, len(tiles))
	for i, t := range tiles {
		if verdicts[i].Accepted {
			out = append(out, t)
		}
	}
	return out
}

func countReasons(verdicts []tile.Verdict) map[tile.Reason]int {
	counts := make(map[tile.Reason]int)
	for _, v := range verdicts {
		counts[v.Reason]++
	}
	return counts
}

// CheckTile reports whether t is a well-formed tile of cfg: every anchor
// inside the rectangle and no two anchors within distance k.
func CheckTile(cfg tile.Config, t tile.Tile) error {
	if !t.Within(cfg.W, cfg.H) {
		return errors.New(errors.ErrCodeInvalidTile, "%v has anchors outside the %dx%d tile", t, cfg.W, cfg.H)
	}
	if !t.Separated(cfg.K) {
		return errors.New(errors.ErrCodeInvalidTile, "%v has anchors within distance %d", t, cfg.K)
	}
	return nil
}

// ExportDIMACS writes the CNF instance of every tile that would reach the
// solver to dir, one file per tile named after its index. Comment lines
// record the tile and the phantom position of each variable. It returns the
// number of files written.
func ExportDIMACS(dir string, cfg tile.Config, tiles []tile.Tile) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}
	written := 0
	for i, t := range tiles {
		inst, ok := tile.Encode(t, cfg)
		if !ok || len(inst.Exposed) == 0 {
			continue
		}
		comments := []string{
			fmt.Sprintf("k=%d w=%d h=%d", cfg.K, cfg.W, cfg.H),
			"tile " + t.String(),
		}
		for v, p := range inst.Vars {
			comments = append(comments, fmt.Sprintf("var %d = %v", v+1, p))
		}
		if err := writeDIMACSFile(filepath.Join(dir, fmt.Sprintf("tile-%05d.cnf", i)), inst.Clauses, comments); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeDIMACSFile(path string, clauses [][]int, comments []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sat.WriteDIMACS(f, clauses, comments...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
