package cache

import "fmt"

// keyVersion is bumped whenever the encoding of cached values changes.
const keyVersion = "v1"

// TileSetKeyOpts holds the parameters that determine a generated tile set.
type TileSetKeyOpts struct {
	K, W, H int
	Solver  string
}

// Keyer derives cache keys.
type Keyer interface {
	// TileSetKey names the accepted tiles of one generation run.
	TileSetKey(opts TileSetKeyOpts) string
	// VerdictKey names the verdict for one tile under opts.
	VerdictKey(opts TileSetKeyOpts, tile string) string
}

// DefaultKeyer produces keys of the form kind:version:hash.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TileSetKey implements [Keyer].
func (DefaultKeyer) TileSetKey(opts TileSetKeyOpts) string {
	return hashKey("tiles:"+keyVersion, opts.K, opts.W, opts.H, opts.Solver)
}

// VerdictKey implements [Keyer].
func (DefaultKeyer) VerdictKey(opts TileSetKeyOpts, tile string) string {
	return hashKey("verdict:"+keyVersion, opts.K, opts.W, opts.H, opts.Solver, tile)
}

// String describes opts for log output.
func (o TileSetKeyOpts) String() string {
	return fmt.Sprintf("k=%d %dx%d solver=%s", o.K, o.W, o.H, o.Solver)
}
