// Package pkg provides the libraries behind ktile.
//
// # Overview
//
// ktile enumerates k-tiles: rectangular patches of anchor cells whose
// anchors are pairwise more than k apart (Manhattan distance) and that can
// sit inside a larger anchor arrangement dominating every cell. The pkg
// directory is organized into four main areas:
//
//  1. Geometry and search: [grid], [tile] (columns, forcing, search,
//     verification, codec)
//  2. Solving: [sat] (gini and gophersat backends, DIMACS)
//  3. Graphs: [tilegraph] (tile adjacency edges) and [labeling] (node
//     labels under adjacency constraints)
//  4. Orchestration: [pipeline], [cache], [config], [io], [api]
//
// # Architecture
//
// The data flow of a generation run:
//
//	k, w, h
//	   ↓
//	tile.Columns      all separated columns of height h
//	   ↓
//	tile.Search       extend column by column, pruning with forced rows
//	   ↓
//	tile.Verifier     SAT check that outside anchors can complete the tile
//	   ↓
//	accepted tiles → tilegraph.Build → labeling.Problem.Solve
//
// [pipeline.Runner] runs the first three stages behind a [cache.Cache];
// the CLI in internal/cli and the HTTP server in [api] both use it.
//
// [grid]: github.com/matzehuels/ktile/pkg/grid
// [tile]: github.com/matzehuels/ktile/pkg/tile
// [sat]: github.com/matzehuels/ktile/pkg/sat
// [tilegraph]: github.com/matzehuels/ktile/pkg/tilegraph
// [labeling]: github.com/matzehuels/ktile/pkg/labeling
// [pipeline]: github.com/matzehuels/ktile/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/ktile/pkg/pipeline.Runner
// [cache]: github.com/matzehuels/ktile/pkg/cache
// [cache.Cache]: github.com/matzehuels/ktile/pkg/cache.Cache
// [config]: github.com/matzehuels/ktile/pkg/config
// [io]: github.com/matzehuels/ktile/pkg/io
// [api]: github.com/matzehuels/ktile/pkg/api
package pkg
