package derivation

import "fmt"

// SelfSigning is a signature derivation code.
//
// This layer never computes signatures; Derive only tags signature bytes
// produced elsewhere. The zero value is not a valid code.
type SelfSigning uint8

const (
	Ed25519Sha512 SelfSigning = iota + 1
	ECDSAsecp256k1Sha256
	Ed448
)

type signingInfo struct {
	name   string
	code   string
	b64Len int
}

var signingTable = [...]signingInfo{
	Ed25519Sha512:        {name: "Ed25519Sha512", code: "0B", b64Len: 86},
	ECDSAsecp256k1Sha256: {name: "ECDSAsecp256k1Sha256", code: "0C", b64Len: 86},
	Ed448:                {name: "Ed448", code: "1AAE", b64Len: 152},
}

func (s SelfSigning) info() (signingInfo, bool) {
	if s == 0 || int(s) >= len(signingTable) {
		return signingInfo{}, false
	}
	return signingTable[s], true
}

// Valid reports whether s names a supported signature scheme.
func (s SelfSigning) Valid() bool {
	_, ok := s.info()
	return ok
}

// Name returns the scheme name (e.g. "Ed448").
func (s SelfSigning) Name() string {
	if i, ok := s.info(); ok {
		return i.name
	}
	return fmt.Sprintf("SelfSigning(%d)", uint8(s))
}

func (s SelfSigning) CodeLen() int {
	i, _ := s.info()
	return len(i.code)
}

func (s SelfSigning) DerivativeB64Len() int {
	i, _ := s.info()
	return i.b64Len
}

func (s SelfSigning) PrefixB64Len() int { return PrefixB64Len(s) }

func (s SelfSigning) String() string {
	i, _ := s.info()
	return i.code
}

// SignatureSize is the raw signature length in bytes implied by the code.
func (s SelfSigning) SignatureSize() int { return RawSize(s) }

// Derive pairs the code with sig. The signature length is not checked here.
func (s SelfSigning) Derive(sig []byte) (SelfSigning, []byte) {
	return s, sig
}

// SelfSigningCodes returns every signature code in master table order.
func SelfSigningCodes() []SelfSigning {
	return []SelfSigning{Ed25519Sha512, ECDSAsecp256k1Sha256, Ed448}
}

// ParseSelfSigning recognizes the self-signing code at the start of s.
// s may be a whole prefix or longer; only the code characters are inspected.
func ParseSelfSigning(s string) (SelfSigning, error) {
	if s == "" {
		return 0, deserializeError(RuleEmptyCode, "empty prefix")
	}
	switch s[0] {
	case '0':
		if len(s) < 2 {
			return 0, deserializeError(RuleTruncatedCode, "truncated signature code: \"0\"")
		}
		switch s[1] {
		case 'B':
			return Ed25519Sha512, nil
		case 'C':
			return ECDSAsecp256k1Sha256, nil
		}
		return 0, deserializeError(RuleUnknownSubset,
			fmt.Sprintf("unknown signature type code: %q", s[:2]))
	case '1':
		if len(s) < 4 {
			return 0, deserializeError(RuleTruncatedCode,
				fmt.Sprintf("truncated signature code: %q", s))
		}
		if s[1:4] == "AAE" {
			return Ed448, nil
		}
		return 0, deserializeError(RuleUnknownSubset,
			fmt.Sprintf("unknown signature type code: %q", s[:4]))
	}
	return 0, deserializeError(RuleUnknownCode,
		fmt.Sprintf("unknown master code: %q", s[:1]))
}
