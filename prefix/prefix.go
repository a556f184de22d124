package prefix

import (
	"encoding/base64"
	"fmt"

	"xdao.co/cesr/compliance"
	"xdao.co/cesr/derivation"
)

var (
	encoding       = base64.RawURLEncoding
	strictEncoding = base64.RawURLEncoding.Strict()
)

func render(code derivation.DerivationCode, raw []byte) string {
	return code.String() + encoding.EncodeToString(raw)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// decodeDerivative decodes the derived data that follows code in s and
// returns the unconsumed remainder.
func decodeDerivative(code derivation.DerivationCode, s string, mode compliance.ComplianceMode) ([]byte, string, error) {
	end := code.PrefixB64Len()
	if len(s) < end {
		return nil, "", deserializeError(RuleTruncatedDerivative,
			fmt.Sprintf("prefix %s needs %d characters, got %d", code, end, len(s)))
	}
	text := s[code.CodeLen():end]

	enc := encoding
	if mode == compliance.Strict {
		enc = strictEncoding
	}
	raw, err := enc.DecodeString(text)
	if err != nil {
		if mode == compliance.Strict {
			if _, lerr := encoding.DecodeString(text); lerr == nil {
				return nil, "", wrapDeserializeError(RuleNonCanonical,
					fmt.Sprintf("non-canonical derivative for %s", code), err)
			}
		}
		return nil, "", wrapDeserializeError(RuleInvalidBase64,
			fmt.Sprintf("invalid derivative for %s", code), err)
	}
	if want := derivation.RawSize(code); len(raw) != want {
		return nil, "", deserializeError(RuleDerivativeSize,
			fmt.Sprintf("derivative for %s decodes to %d bytes, want %d", code, len(raw), want))
	}
	return raw, s[end:], nil
}

func exact(code derivation.DerivationCode, s string) error {
	if len(s) != code.PrefixB64Len() {
		return deserializeError(RuleLengthMismatch,
			fmt.Sprintf("prefix %s must be %d characters, got %d", code, code.PrefixB64Len(), len(s)))
	}
	return nil
}
