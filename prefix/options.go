package prefix

import "xdao.co/cesr/compliance"

// Option configures prefix parsing.
type Option func(*options)

type options struct {
	mode compliance.ComplianceMode
	key  []byte
}

// WithMode selects the compliance mode. The default is compliance.Permissive.
func WithMode(mode compliance.ComplianceMode) Option {
	return func(o *options) { o.mode = mode }
}

// WithKey supplies the key of a keyed self-addressing code, which the text
// form cannot carry. It is ignored for unkeyed and self-signing codes.
func WithKey(key []byte) Option {
	return func(o *options) { o.key = key }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
