package tile

import (
	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/grid"
)

// Config holds the separation parameter and the tile size.
type Config struct {
	K int `json:"k" toml:"k"` // anchors must be more than K apart
	W int `json:"w" toml:"w"` // tile width (columns)
	H int `json:"h" toml:"h"` // tile height (rows)
}

// Validate checks that K, W and H are positive and within bounds.
func (c Config) Validate() error {
	return errors.ValidateParams(c.K, c.W, c.H)
}

// Bounds returns the tile rectangle [0, W) × [0, H).
func (c Config) Bounds() grid.Rect {
	return grid.Bounds(c.W, c.H)
}

// Interior returns the cells at least K away from every edge.
func (c Config) Interior() grid.Rect {
	return c.Bounds().Inset(c.K)
}
