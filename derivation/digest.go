package derivation

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// digestFunc computes a fixed-size digest. key is nil for unkeyed algorithms.
type digestFunc func(data, key []byte) []byte

func blake3Sum256(data, _ []byte) []byte {
	s := blake3.Sum256(data)
	return s[:]
}

// blake3Sum512 is the first 64 bytes of the BLAKE3 extendable output, so
// its first half equals the 256-bit digest.
func blake3Sum512(data, _ []byte) []byte {
	s := blake3.Sum512(data)
	return s[:]
}

// blake2bSum256 runs BLAKE2b with a native 32-byte digest length
// parameter; it is not a truncated BLAKE2b-512.
func blake2bSum256(data, key []byte) []byte {
	return keyedSum(blake2b.New256, data, key)
}

func blake2sSum256(data, key []byte) []byte {
	return keyedSum(blake2s.New256, data, key)
}

func blake2bSum512(data, _ []byte) []byte {
	s := blake2b.Sum512(data)
	return s[:]
}

func sha3Sum256(data, _ []byte) []byte {
	s := sha3.Sum256(data)
	return s[:]
}

func sha3Sum512(data, _ []byte) []byte {
	s := sha3.Sum512(data)
	return s[:]
}

func sha2Sum256(data, _ []byte) []byte {
	s := sha256.Sum256(data)
	return s[:]
}

func sha2Sum512(data, _ []byte) []byte {
	s := sha512.Sum512(data)
	return s[:]
}

func keyedSum(newHash func(key []byte) (hash.Hash, error), data, key []byte) []byte {
	h, err := newHash(key)
	if err != nil {
		// Key sizes are checked when a keyed code is constructed.
		panic("derivation: " + err.Error())
	}
	_, _ = h.Write(data)
	return h.Sum(nil)
}
