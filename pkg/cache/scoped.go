package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments (or the CLI and the API server) can share one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "musicbox:api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the prefixed layout key.
func (k *ScopedKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(sourceHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
