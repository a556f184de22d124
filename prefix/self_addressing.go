package prefix

import (
	"crypto/subtle"
	"fmt"

	"xdao.co/cesr/compliance"
	"xdao.co/cesr/derivation"
)

// SelfAddressing is a digest together with the code that produced it.
type SelfAddressing struct {
	code   derivation.SelfAddressing
	digest []byte
}

// NewSelfAddressing pairs code with digest. It accepts the results of
// derivation.SelfAddressing.Derive directly:
//
//	p := prefix.NewSelfAddressing(code.Derive(data))
func NewSelfAddressing(code derivation.SelfAddressing, digest []byte) SelfAddressing {
	return SelfAddressing{code: code, digest: clone(digest)}
}

// Code returns the derivation code.
func (p SelfAddressing) Code() derivation.SelfAddressing { return p.code }

// Digest returns a copy of the raw digest bytes.
func (p SelfAddressing) Digest() []byte { return clone(p.digest) }

// String renders the prefix: code followed by base64url(digest).
func (p SelfAddressing) String() string { return render(p.code, p.digest) }

// Verify reports whether digest was computed from data with the prefix's code.
// For keyed codes the key must be attached (parse WithKey).
func (p SelfAddressing) Verify(data []byte) bool {
	return subtle.ConstantTimeCompare(p.code.Digest(data), p.digest) == 1
}

// Equal reports whether p and o have the same code (including key) and digest.
func (p SelfAddressing) Equal(o SelfAddressing) bool {
	return p.code.Equal(o.code) && subtle.ConstantTimeCompare(p.digest, o.digest) == 1
}

// ParseSelfAddressing parses a complete self-addressing prefix. s must be
// exactly the code's PrefixB64Len characters.
func ParseSelfAddressing(s string, opts ...Option) (SelfAddressing, error) {
	p, rest, err := ExtractSelfAddressing(s, opts...)
	if err != nil {
		return SelfAddressing{}, err
	}
	if rest != "" {
		return SelfAddressing{}, exact(p.code, s)
	}
	return p, nil
}

// ExtractSelfAddressing parses the self-addressing prefix at the head of s and
// returns the rest of s.
func ExtractSelfAddressing(s string, opts ...Option) (SelfAddressing, string, error) {
	o := collect(opts)
	code, err := derivation.ParseSelfAddressing(s)
	if err != nil {
		return SelfAddressing{}, "", err
	}
	if code.Algorithm().Keyed() {
		if o.key != nil {
			if code, err = code.WithKey(o.key); err != nil {
				return SelfAddressing{}, "", err
			}
		} else if o.mode == compliance.Strict {
			return SelfAddressing{}, "", deserializeError(RuleMissingKey,
				fmt.Sprintf("keyed code %s parsed without a key", code))
		}
	}
	raw, rest, err := decodeDerivative(code, s, o.mode)
	if err != nil {
		return SelfAddressing{}, "", err
	}
	return SelfAddressing{code: code, digest: raw}, rest, nil
}
