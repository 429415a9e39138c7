package tile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSearchMatchesBruteForce(t *testing.T) {
	tests := []Config{
		{K: 1, W: 1, H: 3},
		{K: 1, W: 2, H: 2},
		{K: 1, W: 3, H: 3},
		{K: 1, W: 4, H: 3},
		{K: 1, W: 4, H: 4},
		{K: 2, W: 3, H: 4},
		{K: 2, W: 5, H: 3},
		{K: 2, W: 4, H: 4},
		{K: 3, W: 7, H: 2},
	}
	for _, cfg := range tests {
		got, stats, err := Search(context.Background(), cfg, Columns(cfg.H, cfg.K))
		if err != nil {
			t.Fatalf("Search(%+v): %v", cfg, err)
		}
		want := bruteTiles(cfg)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Search(%+v) mismatch (-want +got):\n%s", cfg, diff)
		}
		if stats.Candidates != len(got) {
			t.Errorf("stats.Candidates = %d, want %d", stats.Candidates, len(got))
		}
	}
}

func TestSearchInvariants(t *testing.T) {
	cfg := Config{K: 2, W: 6, H: 6}
	tiles, stats, err := Search(context.Background(), cfg, Columns(cfg.H, cfg.K))
	if err != nil {
		t.Fatal(err)
	}
	if len(tiles) == 0 {
		t.Fatal("expected candidates")
	}
	interior := cfg.Interior().Points()
	for _, tl := range tiles {
		if !tl.Within(cfg.W, cfg.H) {
			t.Errorf("%v leaves the tile", tl)
		}
		if !tl.Separated(cfg.K) {
			t.Errorf("%v violates separation", tl)
		}
		for _, c := range interior {
			if !dominatedBy(tl, c, cfg.K) {
				t.Errorf("%v leaves interior cell %v undominated", tl, c)
			}
		}
	}
	for i := 1; i < len(tiles); i++ {
		if Compare(tiles[i-1], tiles[i]) >= 0 {
			t.Fatalf("result not strictly sorted at %d", i)
		}
	}
	if stats.Expanded == 0 || stats.Columns != len(Columns(cfg.H, cfg.K)) {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestSearchSingleColumn(t *testing.T) {
	cfg := Config{K: 1, W: 1, H: 3}
	got, _, err := Search(context.Background(), cfg, Columns(cfg.H, cfg.K))
	if err != nil {
		t.Fatal(err)
	}
	want := []Tile{
		{},
		{{X: 0, Y: 0}},
		{{X: 0, Y: 0}, {X: 0, Y: 2}},
		{{X: 0, Y: 1}},
		{{X: 0, Y: 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := Config{K: 1, W: 4, H: 4}
	_, _, err := Search(ctx, cfg, Columns(cfg.H, cfg.K))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSearchEmptyWidth(t *testing.T) {
	got, _, err := Search(context.Background(), Config{K: 1, W: 0, H: 3}, Columns(3, 1))
	if err != nil || got != nil {
		t.Errorf("Search with W=0 = %v, %v", got, err)
	}
}
