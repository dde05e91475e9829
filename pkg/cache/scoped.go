package cache

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// apibook version so that books compiled by an older binary are never reused.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.4.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means NewDefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// BookKey returns the prefixed book key.
func (k *ScopedKeyer) BookKey(inputHash string, opts BookKeyOpts) string {
	return k.prefix + k.inner.BookKey(inputHash, opts)
}

// FileKey returns the prefixed file key.
func (k *ScopedKeyer) FileKey(bookDir, path string) string {
	return k.prefix + k.inner.FileKey(bookDir, path)
}
