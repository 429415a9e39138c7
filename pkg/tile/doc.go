// Package tile enumerates and verifies k-tiles: finite w×h rectangles of
// anchors that can serve as the repeating unit of an infinite periodic
// pattern in which every two anchors are more than k apart in Manhattan
// distance.
//
// # Pipeline
//
// Candidate tiles are produced in three steps:
//
//  1. [Columns] enumerates every valid single column of height h: the sets of
//     rows whose pairwise gaps exceed k. The result is computed once per
//     (h, k) and shared read-only by every search branch.
//  2. [Search] grows tiles column by column with a depth-first worklist of
//     immutable [Partial] values. Each step calls [Extend], which rules out
//     rows too close to existing anchors (forced absent) and rows that must be
//     filled now because an interior cell would otherwise never be dominated
//     (forced present).
//  3. [Verifier.Verify] decides whether the cells near the tile boundary that
//     no in-tile anchor dominates can all be dominated at once by external
//     "phantom" anchors that respect the separation rule. The question is
//     encoded as CNF ([Encode]) and handed to a [sat.Solver].
//
// # Terminology
//
// A cell is dominated when some anchor lies within distance k of it. Every
// cell of an infinite valid pattern is dominated. The interior of a tile is
// the region at least k away from every edge: its cells can only be dominated
// by in-tile anchors, so [Search] enforces their domination directly. The
// remaining undominated cells are exposed, and their fate depends on what is
// placed around the tile.
//
// # Example
//
//	cfg := tile.Config{K: 1, W: 3, H: 3}
//	cols := tile.Columns(cfg.H, cfg.K)
//	candidates, _, err := tile.Search(ctx, cfg, cols)
//	v := tile.NewVerifier(cfg, sat.NewGini())
//	for _, t := range candidates {
//	    verdict, err := v.Verify(ctx, t)
//	    if verdict.Accepted {
//	        fmt.Println(t)
//	    }
//	}
//
// # Encoding
//
// Tiles are written one per line as point sets, for example
// {(0, 0), (2, 1)}, with the empty tile written as set(). [Pack] maps a tile to
// the integer sum of 2^(x + y·w), which is how the tile graph names nodes.
package tile
