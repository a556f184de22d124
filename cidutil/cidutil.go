// Package cidutil bridges self-addressing prefixes and the multiformats
// ecosystem (multihash, CIDv1, multibase).
//
// Only unkeyed digests have a multihash: a keyed BLAKE2 digest with a
// non-empty key is not what the blake2 multihash codes describe.
package cidutil

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"

	"xdao.co/cesr/derivation"
	"xdao.co/cesr/prefix"
)

const (
	RuleNoMultihash      = "CESR-MH-001"
	RuleInvalidMultihash = "CESR-MH-002"
	RuleUnknownMultihash = "CESR-MH-003"
	RuleDigestLength     = "CESR-MH-004"
	RuleInvalidCID       = "CESR-MH-005"
)

// Multihash codes for the 256-bit BLAKE2 variants.
const (
	blake2b256 = multihash.BLAKE2B_MIN + 31
	blake2s256 = multihash.BLAKE2S_MAX
)

var multihashCodes = map[derivation.HashAlgorithm]uint64{
	derivation.Blake3_256: multihash.BLAKE3,
	derivation.Blake2B256: blake2b256,
	derivation.Blake2S256: blake2s256,
	derivation.SHA3_256:   multihash.SHA3_256,
	derivation.SHA2_256:   multihash.SHA2_256,
	derivation.Blake3_512: multihash.BLAKE3,
	derivation.SHA3_512:   multihash.SHA3_512,
	derivation.Blake2B512: multihash.BLAKE2B_MAX,
	derivation.SHA2_512:   multihash.SHA2_512,
}

func mhError(ruleID, msg string) error {
	return derivation.NewError(derivation.KindMultiformat, ruleID, msg)
}

// Multihash encodes the digest of p as a multihash.
func Multihash(p prefix.SelfAddressing) (multihash.Multihash, error) {
	code := p.Code()
	if code.HasKey() {
		return nil, mhError(RuleNoMultihash, fmt.Sprintf("keyed %s digest has no multihash", code.Algorithm()))
	}
	mhCode, ok := multihashCodes[code.Algorithm()]
	if !ok {
		return nil, mhError(RuleNoMultihash, fmt.Sprintf("no multihash for %s", code.Algorithm()))
	}
	mh, err := multihash.Encode(p.Digest(), mhCode)
	if err != nil {
		return nil, derivation.WrapError(derivation.KindMultiformat, RuleInvalidMultihash, "encode multihash", err)
	}
	return mh, nil
}

// FromMultihash converts a multihash back to a self-addressing prefix.
// BLAKE3 multihashes select Blake3-256 or Blake3-512 by digest length.
func FromMultihash(mh multihash.Multihash) (prefix.SelfAddressing, error) {
	dec, err := multihash.Decode(mh)
	if err != nil {
		return prefix.SelfAddressing{}, derivation.WrapError(derivation.KindMultiformat, RuleInvalidMultihash, "decode multihash", err)
	}
	var alg derivation.HashAlgorithm
	switch dec.Code {
	case multihash.BLAKE3:
		switch dec.Length {
		case 32:
			alg = derivation.Blake3_256
		case 64:
			alg = derivation.Blake3_512
		}
	case blake2b256:
		alg = derivation.Blake2B256
	case blake2s256:
		alg = derivation.Blake2S256
	case multihash.SHA3_256:
		alg = derivation.SHA3_256
	case multihash.SHA2_256:
		alg = derivation.SHA2_256
	case multihash.SHA3_512:
		alg = derivation.SHA3_512
	case multihash.BLAKE2B_MAX:
		alg = derivation.Blake2B512
	case multihash.SHA2_512:
		alg = derivation.SHA2_512
	}
	if !alg.Valid() {
		return prefix.SelfAddressing{}, mhError(RuleUnknownMultihash,
			fmt.Sprintf("no self-addressing code for multihash 0x%x (length %d)", dec.Code, dec.Length))
	}
	if len(dec.Digest) != alg.DigestSize() {
		return prefix.SelfAddressing{}, mhError(RuleDigestLength,
			fmt.Sprintf("%s digest must be %d bytes, got %d", alg, alg.DigestSize(), len(dec.Digest)))
	}
	return prefix.NewSelfAddressing(derivation.NewSelfAddressing(alg), dec.Digest), nil
}

// CIDv1Raw returns a CIDv1 with the "raw" multicodec addressing the same
// bytes as p.
func CIDv1Raw(p prefix.SelfAddressing) (cid.Cid, error) {
	mh, err := Multihash(p)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// FromCID extracts the self-addressing prefix from a CID's multihash.
func FromCID(s string) (prefix.SelfAddressing, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return prefix.SelfAddressing{}, derivation.WrapError(derivation.KindMultiformat, RuleInvalidCID, "decode cid", err)
	}
	return FromMultihash(c.Hash())
}

// Multibase renders the multihash of p in the given multibase encoding.
func Multibase(p prefix.SelfAddressing, base multibase.Encoding) (string, error) {
	mh, err := Multihash(p)
	if err != nil {
		return "", err
	}
	s, err := multibase.Encode(base, mh)
	if err != nil {
		return "", derivation.WrapError(derivation.KindMultiformat, RuleInvalidMultihash, "multibase encode", err)
	}
	return s, nil
}
