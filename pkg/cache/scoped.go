package cache

// ScopedKeyer prefixes the keys of another Keyer, so environments sharing
// one Redis server stay apart:
//
//	keyer := cache.NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) DocumentKey(requestHash string) string {
	return k.Prefix + k.Inner.DocumentKey(requestHash)
}

func (k ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(docHash, opts)
}
