package derivation

import (
	"bytes"
	"fmt"
)

// HashAlgorithm enumerates the digest algorithms with a self-addressing code.
//
// The zero value is not a valid algorithm.
type HashAlgorithm uint8

const (
	Blake3_256 HashAlgorithm = iota + 1
	Blake2B256
	Blake2S256
	SHA3_256
	SHA2_256
	Blake3_512
	SHA3_512
	Blake2B512
	SHA2_512
)

type hashInfo struct {
	name    string
	code    string
	b64Len  int
	size    int
	maxKey  int // zero for unkeyed algorithms
	compute digestFunc
}

// hashTable is indexed by HashAlgorithm. Lengths come from the CESR master
// code table and are never derived from digest output at runtime.
var hashTable = [...]hashInfo{
	Blake3_256: {name: "Blake3-256", code: "E", b64Len: 43, size: 32, compute: blake3Sum256},
	Blake2B256: {name: "Blake2b-256", code: "F", b64Len: 43, size: 32, maxKey: 64, compute: blake2bSum256},
	Blake2S256: {name: "Blake2s-256", code: "G", b64Len: 43, size: 32, maxKey: 32, compute: blake2sSum256},
	SHA3_256:   {name: "SHA3-256", code: "H", b64Len: 43, size: 32, compute: sha3Sum256},
	SHA2_256:   {name: "SHA2-256", code: "I", b64Len: 43, size: 32, compute: sha2Sum256},
	Blake3_512: {name: "Blake3-512", code: "0D", b64Len: 86, size: 64, compute: blake3Sum512},
	SHA3_512:   {name: "SHA3-512", code: "0E", b64Len: 86, size: 64, compute: sha3Sum512},
	Blake2B512: {name: "Blake2b-512", code: "0F", b64Len: 86, size: 64, compute: blake2bSum512},
	SHA2_512:   {name: "SHA2-512", code: "0G", b64Len: 86, size: 64, compute: sha2Sum512},
}

func (a HashAlgorithm) info() (hashInfo, bool) {
	if a == 0 || int(a) >= len(hashTable) {
		return hashInfo{}, false
	}
	return hashTable[a], true
}

// Valid reports whether a names a supported algorithm.
func (a HashAlgorithm) Valid() bool {
	_, ok := a.info()
	return ok
}

// String returns the human-readable algorithm name (e.g. "SHA2-256").
func (a HashAlgorithm) String() string {
	if i, ok := a.info(); ok {
		return i.name
	}
	return fmt.Sprintf("HashAlgorithm(%d)", uint8(a))
}

// Code returns the derivation code string for a, or "" if a is invalid.
func (a HashAlgorithm) Code() string {
	i, _ := a.info()
	return i.code
}

// Keyed reports whether the algorithm takes a key.
func (a HashAlgorithm) Keyed() bool {
	i, _ := a.info()
	return i.maxKey > 0
}

// MaxKeySize is the largest key the algorithm accepts; zero when unkeyed.
func (a HashAlgorithm) MaxKeySize() int {
	i, _ := a.info()
	return i.maxKey
}

// DigestSize is the raw digest length in bytes.
func (a HashAlgorithm) DigestSize() int {
	i, _ := a.info()
	return i.size
}

// SelfAddressing is a digest derivation code.
//
// Keyed algorithms (Blake2B256, Blake2S256) carry their key; the key is owned
// by the value and never mutated. The zero value is not a valid code.
type SelfAddressing struct {
	alg HashAlgorithm
	key []byte
}

// NewSelfAddressing returns the code for alg. Keyed algorithms get an empty
// key, which is what parsing their code string yields too.
func NewSelfAddressing(alg HashAlgorithm) SelfAddressing {
	return SelfAddressing{alg: alg}
}

// NewKeyedSelfAddressing returns a keyed code for alg holding a copy of key.
func NewKeyedSelfAddressing(alg HashAlgorithm, key []byte) (SelfAddressing, error) {
	return SelfAddressing{alg: alg}.WithKey(key)
}

// WithKey returns a copy of s holding key. It is how a key learned out of band
// is re-attached to a parsed keyed code.
func (s SelfAddressing) WithKey(key []byte) (SelfAddressing, error) {
	if !s.alg.Keyed() {
		return SelfAddressing{}, NewError(KindKey, RuleKeyNotKeyed,
			fmt.Sprintf("%s does not take a key", s.alg))
	}
	if limit := s.alg.MaxKeySize(); len(key) > limit {
		return SelfAddressing{}, NewError(KindKey, RuleKeyTooLong,
			fmt.Sprintf("%s key must be at most %d bytes, got %d", s.alg, limit, len(key)))
	}
	k := make([]byte, len(key))
	copy(k, key)
	return SelfAddressing{alg: s.alg, key: k}, nil
}

// Algorithm returns the digest algorithm.
func (s SelfAddressing) Algorithm() HashAlgorithm { return s.alg }

// Key returns a copy of the key; nil for unkeyed codes.
func (s SelfAddressing) Key() []byte {
	if len(s.key) == 0 {
		return nil
	}
	k := make([]byte, len(s.key))
	copy(k, s.key)
	return k
}

// HasKey reports whether a non-empty key is attached.
func (s SelfAddressing) HasKey() bool { return len(s.key) > 0 }

// Equal reports whether s and o name the same algorithm with the same key.
// A nil key and an empty key are equal.
func (s SelfAddressing) Equal(o SelfAddressing) bool {
	return s.alg == o.alg && bytes.Equal(s.key, o.key)
}

func (s SelfAddressing) CodeLen() int {
	i, _ := s.alg.info()
	return len(i.code)
}

func (s SelfAddressing) DerivativeB64Len() int {
	i, _ := s.alg.info()
	return i.b64Len
}

func (s SelfAddressing) PrefixB64Len() int { return PrefixB64Len(s) }

func (s SelfAddressing) String() string { return s.alg.Code() }

// Digest hashes data with the code's algorithm (and key, if keyed).
// The result is always DigestSize bytes.
func (s SelfAddressing) Digest(data []byte) []byte {
	i, ok := s.alg.info()
	if !ok {
		panic(fmt.Sprintf("derivation: digest with invalid %s", s.alg))
	}
	return i.compute(data, s.key)
}

// Derive pairs the code with the digest of data, ready for the prefix layer.
func (s SelfAddressing) Derive(data []byte) (SelfAddressing, []byte) {
	return s, s.Digest(data)
}

// SelfAddressingCodes returns one code per algorithm in master table order.
// Keyed codes have empty keys.
func SelfAddressingCodes() []SelfAddressing {
	out := make([]SelfAddressing, 0, len(hashTable)-1)
	for a := Blake3_256; a <= SHA2_512; a++ {
		out = append(out, NewSelfAddressing(a))
	}
	return out
}

// ParseSelfAddressing recognizes the self-addressing code at the start of s.
// s may be a whole prefix or longer; only the code characters are inspected.
// The returned code's CodeLen is the number of characters consumed.
func ParseSelfAddressing(s string) (SelfAddressing, error) {
	if s == "" {
		return SelfAddressing{}, deserializeError(RuleEmptyCode, "empty prefix")
	}
	switch s[0] {
	case 'E':
		return NewSelfAddressing(Blake3_256), nil
	case 'F':
		return NewSelfAddressing(Blake2B256), nil
	case 'G':
		return NewSelfAddressing(Blake2S256), nil
	case 'H':
		return NewSelfAddressing(SHA3_256), nil
	case 'I':
		return NewSelfAddressing(SHA2_256), nil
	case '0':
		if len(s) < 2 {
			return SelfAddressing{}, deserializeError(RuleTruncatedCode, "truncated hash code: \"0\"")
		}
		switch s[1] {
		case 'D':
			return NewSelfAddressing(Blake3_512), nil
		case 'E':
			return NewSelfAddressing(SHA3_512), nil
		case 'F':
			return NewSelfAddressing(Blake2B512), nil
		case 'G':
			return NewSelfAddressing(SHA2_512), nil
		}
		return SelfAddressing{}, deserializeError(RuleUnknownSubset,
			fmt.Sprintf("unknown hash code: %q", s[:2]))
	}
	return SelfAddressing{}, deserializeError(RuleUnknownCode,
		fmt.Sprintf("unknown hash algorithm code: %q", s[:1]))
}
