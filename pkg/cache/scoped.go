package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis or MongoDB instance without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TileSetKey generates a prefixed tile set key.
func (k *ScopedKeyer) TileSetKey(opts TileSetKeyOpts) string {
	return k.prefix + k.inner.TileSetKey(opts)
}

// VerdictKey generates a prefixed verdict key.
func (k *ScopedKeyer) VerdictKey(opts TileSetKeyOpts, tile string) string {
	return k.prefix + k.inner.VerdictKey(opts, tile)
}
