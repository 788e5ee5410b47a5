package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in hosted deployments where different clinics or users
// need separate cache namespaces.
//
// Example usage:
//
//	// Clinic-specific keys for private pivot data
//	clinicKeyer := NewScopedKeyer(NewDefaultKeyer(), "clinic:abc123:")
//
//	// Global keys for shared demo data
//	globalKeyer := NewDefaultKeyer()
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// PivotKey generates a prefixed key for pivot matrix caching.
func (k *ScopedKeyer) PivotKey(source, subject string, opts PivotKeyOpts) string {
	return k.prefix + k.inner.PivotKey(source, subject, opts)
}

// ModelKey generates a prefixed key for chart model caching.
func (k *ScopedKeyer) ModelKey(matrixHash string, opts ModelKeyOpts) string {
	return k.prefix + k.inner.ModelKey(matrixHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(matrixHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(matrixHash, opts)
}
