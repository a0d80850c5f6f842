package cache

// Keyer derives cache keys.
type Keyer interface {
	// DiffKey returns the key of the merged document for two inputs,
	// identified by their content digests.
	DiffKey(beforeDigest, afterDigest string, opts DiffKeyOpts) string

	// DecorateKey returns the key of a decorated document.
	DecorateKey(docDigest, format string) string
}

// DiffKeyOpts lists the options that change a diff result.
type DiffKeyOpts struct {
	Decorate string `json:"decorate,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DiffKey implements Keyer.
func (DefaultKeyer) DiffKey(beforeDigest, afterDigest string, opts DiffKeyOpts) string {
	return hashKey("diff", beforeDigest, afterDigest, opts)
}

// DecorateKey implements Keyer.
func (DefaultKeyer) DecorateKey(docDigest, format string) string {
	return hashKey("decorate", docDigest, format)
}
