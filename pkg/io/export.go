package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/labeling"
	"github.com/matzehuels/ktile/pkg/tile"
	"github.com/matzehuels/ktile/pkg/tilegraph"
)

// Format selects a file encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// FormatFor picks the format for path by its extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatText
}

// WriteTiles encodes tiles to w in the given format.
func WriteTiles(w io.Writer, format Format, tiles []tile.Tile) error {
	if format != FormatJSON {
		return tile.WriteSet(w, tiles)
	}
	if tiles == nil {
		tiles = []tile.Tile{}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(tiles); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportTiles writes tiles to path, choosing the format from the file
// extension.
func ExportTiles(path string, tiles []tile.Tile) error {
	return create(path, func(w io.Writer) error {
		return WriteTiles(w, FormatFor(path), tiles)
	})
}

// ExportEdges writes a tile graph edge list to path.
func ExportEdges(path string, edges []tilegraph.Edge) error {
	return create(path, func(w io.Writer) error {
		return tilegraph.WriteEdges(w, edges)
	})
}

// WriteLabeling encodes l to w in the given format.
func WriteLabeling(w io.Writer, format Format, l labeling.Labeling) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l.Map()); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(w, l.String())
	return err
}

// ExportLabeling writes l to path.
func ExportLabeling(path string, l labeling.Labeling) error {
	return create(path, func(w io.Writer) error {
		return WriteLabeling(w, FormatFor(path), l)
	})
}

func create(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
