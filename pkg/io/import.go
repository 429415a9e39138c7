package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/labeling"
	"github.com/matzehuels/ktile/pkg/tile"
	"github.com/matzehuels/ktile/pkg/tilegraph"
)

// ReadTiles decodes a tile set from r in the given format.
func ReadTiles(r io.Reader, format Format) ([]tile.Tile, error) {
	if format != FormatJSON {
		return tile.ReadSet(r)
	}
	var tiles []tile.Tile
	if err := json.NewDecoder(r).Decode(&tiles); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTile, err, "decode tiles")
	}
	for i, t := range tiles {
		tiles[i] = tile.New(t...)
	}
	return tiles, nil
}

// ImportTiles reads the tile set stored at path, choosing the format from
// the file extension.
func ImportTiles(path string) ([]tile.Tile, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tiles, err := ReadTiles(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tiles, nil
}

// ImportEdges reads a tile graph edge list from path.
func ImportEdges(path string) ([]tilegraph.Edge, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	edges, err := tilegraph.ReadEdges(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return edges, nil
}

// ImportConstraints reads a labeling constraint file from path.
func ImportConstraints(path string) (labeling.Constraints, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := labeling.ReadConstraints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
