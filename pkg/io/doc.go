// Package io reads and writes the files the ktile commands exchange.
//
// # Formats
//
// Tile sets are stored one tile per line, anchors sorted, the empty tile
// written as set():
//
//	set()
//	{(0, 0), (2, 1)}
//
// A path ending in .json selects JSON instead: a list of tiles, each a list
// of [x, y] pairs:
//
//	[[], [[0, 0], [2, 1]]]
//
// Tile graph edges use one (from, ('D', to)) line per edge, where from and
// to are packed tile codes. Constraint files list one ('D', (a, b)) pair per
// line. Labelings are written as {node: label, ...} or, for .json paths, as
// an object keyed by the decimal node code.
//
// # Errors
//
// A missing input file yields errors.ErrCodeFileNotFound. Parse failures
// carry the code of the underlying codec (INVALID_TILE, INVALID_EDGE,
// INVALID_CONSTRAINT) and the offending line number.
package io
