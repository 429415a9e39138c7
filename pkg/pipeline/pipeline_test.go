package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ktile/pkg/cache"
	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/grid"
	"github.com/matzehuels/ktile/pkg/sat"
	"github.com/matzehuels/ktile/pkg/tile"
)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{K: 1, W: 2, H: 3}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Solver != DefaultSolver {
		t.Errorf("Solver should be %s, got %s", DefaultSolver, opts.Solver)
	}
	if opts.Workers != DefaultWorkers() {
		t.Errorf("Workers should be %d, got %d", DefaultWorkers(), opts.Workers)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}

	// Idempotent
	opts.Workers = 3
	if err := opts.ValidateAndSetDefaults(); err != nil || opts.Workers != 3 {
		t.Errorf("second call changed options: %v, workers %d", err, opts.Workers)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []Options{
		{K: 0, W: 2, H: 2},
		{K: 1, W: 0, H: 2},
		{K: 1, W: 2, H: -1},
		{K: 1, W: 2, H: 2, Solver: "minisat"},
		{K: 1, W: 2, H: 2, Workers: -2},
	}
	for _, opts := range tests {
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("%+v: err = %v, want invalid config", opts, err)
		}
	}
}

func TestExecuteSingleColumn(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{K: 1, W: 1, H: 3})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tl := range res.Tiles {
		got = append(got, tl.String())
	}
	want := []string{"set()", "{(0, 0)}", "{(0, 0), (0, 2)}", "{(0, 1)}", "{(0, 2)}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
	if res.Stats.Candidates != 5 || res.Stats.Accepted != 5 || res.Stats.Columns != 5 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.Reasons[tile.ReasonNoExposure] != 2 || res.Stats.Reasons[tile.ReasonSatisfiable] != 3 {
		t.Errorf("reasons = %v", res.Stats.Reasons)
	}
	if res.RunID == "" || res.CacheInfo.Hit {
		t.Errorf("result = %+v", res)
	}
}

func TestExecuteMatchesDirectPipeline(t *testing.T) {
	cfg := tile.Config{K: 2, W: 5, H: 4}
	candidates, _, err := tile.Search(context.Background(), cfg, tile.Columns(cfg.H, cfg.K))
	if err != nil {
		t.Fatal(err)
	}
	v := tile.NewVerifier(cfg, sat.NewGini())
	var want []tile.Tile
	for _, c := range candidates {
		verdict, err := v.Verify(context.Background(), c)
		if err != nil {
			t.Fatal(err)
		}
		if verdict.Accepted {
			want = append(want, c)
		}
	}

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{K: cfg.K, W: cfg.W, H: cfg.H})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, res.Tiles); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteIndependentOfWorkersAndSolver(t *testing.T) {
	base := Options{K: 1, W: 4, H: 4, Workers: 1}
	r := NewRunner(nil, nil, nil)
	want, err := r.Execute(context.Background(), base)
	if err != nil {
		t.Fatal(err)
	}
	for _, opts := range []Options{
		{K: 1, W: 4, H: 4, Workers: 8},
		{K: 1, W: 4, H: 4, Workers: 3, Solver: sat.BackendGophersat},
	} {
		got, err := r.Execute(context.Background(), opts)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want.Tiles, got.Tiles); diff != "" {
			t.Errorf("%+v: tiles mismatch (-want +got):\n%s", opts, diff)
		}
	}
}

func TestExecuteCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	opts := Options{K: 1, W: 3, H: 3}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second run should hit")
	}
	if diff := cmp.Diff(first.Tiles, second.Tiles); diff != "" {
		t.Errorf("cached tiles mismatch (-want +got):\n%s", diff)
	}
	if first.RunID == second.RunID {
		t.Error("runs share an id")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hit || third.Stats.Candidates == 0 {
		t.Errorf("refresh run = %+v", third.CacheInfo)
	}

	// A different solver is a different key.
	other, err := r.Execute(ctx, Options{K: 1, W: 3, H: 3, Solver: sat.BackendGophersat})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheInfo.Hit {
		t.Error("gophersat run should not reuse the gini entry")
	}
}

func TestExecuteCorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	opts := Options{K: 1, W: 2, H: 2}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.TileSetKey(opts.KeyOpts())
	if err := c.Set(ctx, key, []byte("{(0, oops)}\n"), 0); err != nil {
		t.Fatal(err)
	}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.Hit || len(res.Tiles) == 0 {
		t.Errorf("corrupt entry should regenerate: %+v", res)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{K: 1, W: 4, H: 4})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "context canceled") {
		t.Errorf("err = %v", err)
	}
}

type failingSolver struct{}

func (failingSolver) Solve(context.Context, [][]int) (sat.Model, bool, error) {
	return nil, false, fmt.Errorf("oracle crashed")
}

func (failingSolver) Name() string { return "failing" }

func TestVerifyAllPropagatesSolverFailure(t *testing.T) {
	cfg := tile.Config{K: 1, W: 1, H: 3}
	tiles := []tile.Tile{{grid.Pt(0, 1)}, {grid.Pt(0, 0)}}
	_, err := VerifyAll(context.Background(), tile.NewVerifier(cfg, failingSolver{}), tiles, 2)
	if !errors.Is(err, errors.ErrCodeSolverFailure) {
		t.Errorf("err = %v, want solver failure", err)
	}
}

func TestVerifyAllOrder(t *testing.T) {
	cfg := tile.Config{K: 1, W: 3, H: 3}
	tiles := []tile.Tile{{}, {grid.Pt(1, 1)}, {grid.Pt(0, 0)}}
	verdicts, err := VerifyAll(context.Background(), tile.NewVerifier(cfg, nil), tiles, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []tile.Reason{tile.ReasonInteriorGap, tile.ReasonSatisfiable, tile.ReasonInteriorGap}
	for i, v := range verdicts {
		if v.Reason != want[i] {
			t.Errorf("verdict %d = %s, want %s", i, v.Reason, want[i])
		}
	}
	if got := Accepted(tiles, verdicts); len(got) != 1 || !got[0].Equal(tiles[1]) {
		t.Errorf("Accepted = %v", got)
	}
}

func TestVerifyTiles(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{K: 1, W: 2, H: 2}

	verdicts, err := r.VerifyTiles(context.Background(), opts, []tile.Tile{{grid.Pt(0, 0), grid.Pt(1, 1)}})
	if err != nil {
		t.Fatal(err)
	}
	if len(verdicts) != 1 || !verdicts[0].Accepted {
		t.Errorf("verdicts = %+v", verdicts)
	}

	for _, bad := range []tile.Tile{{grid.Pt(2, 0)}, {grid.Pt(0, 0), grid.Pt(0, 1)}} {
		_, err := r.VerifyTiles(context.Background(), opts, []tile.Tile{bad})
		if !errors.Is(err, errors.ErrCodeInvalidTile) {
			t.Errorf("%v: err = %v, want invalid tile", bad, err)
		}
	}
}

func TestVerifyTilesUsesRunnerLogger(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(nil, nil, log.NewWithOptions(&buf, log.Options{}))
	opts := Options{K: 1, W: 2, H: 2}

	tiles := []tile.Tile{{grid.Pt(0, 0), grid.Pt(1, 1)}, {grid.Pt(0, 0)}}
	if _, err := r.VerifyTiles(context.Background(), opts, tiles); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "verified tiles") || !strings.Contains(out, "tiles=2") {
		t.Errorf("runner logger output = %q, want the verification summary", out)
	}
}

func TestVerifyTileCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	opts := Options{K: 1, W: 1, H: 3}
	tl := tile.Tile{grid.Pt(0, 0)}

	first, hit, err := r.VerifyTile(ctx, opts, tl)
	if err != nil || hit {
		t.Fatalf("first VerifyTile: hit %v, err %v", hit, err)
	}
	second, hit, err := r.VerifyTile(ctx, opts, tl)
	if err != nil || !hit {
		t.Fatalf("second VerifyTile: hit %v, err %v", hit, err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached verdict mismatch (-want +got):\n%s", diff)
	}
}

func TestExportDIMACS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cnf")
	cfg := tile.Config{K: 1, W: 1, H: 3}
	tiles, _, err := tile.Search(context.Background(), cfg, tile.Columns(cfg.H, cfg.K))
	if err != nil {
		t.Fatal(err)
	}

	n, err := ExportDIMACS(dir, cfg, tiles)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("wrote %d files, want 3", n)
	}
	data, err := os.ReadFile(filepath.Join(dir, "tile-00001.cnf"))
	if err != nil {
		t.Fatal(err)
	}
	want := "c k=1 w=1 h=3\nc tile {(0, 0)}\nc var 1 = (-1, 2)\nc var 2 = (0, 3)\nc var 3 = (1, 2)\np cnf 3 1\n1 2 3 0\n"
	if string(data) != want {
		t.Errorf("tile-00001.cnf =\n%s\nwant\n%s", data, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "tile-00002.cnf")); !os.IsNotExist(err) {
		t.Error("tile without exposure should not be exported")
	}
}
