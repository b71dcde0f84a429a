package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving several
// workspaces separate namespaces in one shared backend.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "project:billing:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SynthesisKey(documentHash string, opts SynthesisKeyOpts) string {
	return k.prefix + k.inner.SynthesisKey(documentHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(synthesisHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(synthesisHash, opts)
}
