package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants can share
// one backend. `storyswift serve` scopes keys per API client.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "client:ci:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey returns the prefixed result key.
func (k *ScopedKeyer) ResultKey(descriptorHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(descriptorHash, opts)
}

// GraphKey returns the prefixed graph key.
func (k *ScopedKeyer) GraphKey(descriptorHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(descriptorHash, opts)
}
