package cache

// Keyer derives cache keys for API responses.
type Keyer interface {
	// HTTPKey returns the key for a response in namespace (e.g. "tree")
	// identified by key (usually the request URL).
	HTTPKey(namespace, key string) string
}

// DefaultKeyer hashes the request identity into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey implements Keyer.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return hashKey("http:"+namespace, key)
}

// ScopedKeyer wraps a Keyer with a fixed prefix.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), InstanceScope(baseURL, token))
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey implements Keyer.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// InstanceScope returns a key prefix identifying one GitLab instance and
// credential. The token itself never appears in the key.
func InstanceScope(baseURL, token string) string {
	return "gitlab:" + Hash([]byte(baseURL + "\x00" + token))[:16] + ":"
}
