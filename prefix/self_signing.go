package prefix

import (
	"bytes"

	"xdao.co/cesr/derivation"
)

// SelfSigning is a signature together with the code of the scheme that
// produced it.
type SelfSigning struct {
	code      derivation.SelfSigning
	signature []byte
}

// NewSelfSigning pairs code with sig:
//
//	p := prefix.NewSelfSigning(derivation.Ed25519Sha512.Derive(sig))
func NewSelfSigning(code derivation.SelfSigning, sig []byte) SelfSigning {
	return SelfSigning{code: code, signature: clone(sig)}
}

func (p SelfSigning) Code() derivation.SelfSigning { return p.code }

// Signature returns a copy of the raw signature bytes.
func (p SelfSigning) Signature() []byte { return clone(p.signature) }

func (p SelfSigning) String() string { return render(p.code, p.signature) }

func (p SelfSigning) Equal(o SelfSigning) bool {
	return p.code == o.code && bytes.Equal(p.signature, o.signature)
}

// ParseSelfSigning parses a complete self-signing prefix.
func ParseSelfSigning(s string, opts ...Option) (SelfSigning, error) {
	p, rest, err := ExtractSelfSigning(s, opts...)
	if err != nil {
		return SelfSigning{}, err
	}
	if rest != "" {
		return SelfSigning{}, exact(p.code, s)
	}
	return p, nil
}

// ExtractSelfSigning parses the self-signing prefix at the head of s and
// returns the rest of s.
func ExtractSelfSigning(s string, opts ...Option) (SelfSigning, string, error) {
	o := collect(opts)
	code, err := derivation.ParseSelfSigning(s)
	if err != nil {
		return SelfSigning{}, "", err
	}
	raw, rest, err := decodeDerivative(code, s, o.mode)
	if err != nil {
		return SelfSigning{}, "", err
	}
	return SelfSigning{code: code, signature: raw}, rest, nil
}
