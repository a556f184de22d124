package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"xdao.co/cesr/derivation"
	"xdao.co/cesr/prefix"
)

// SeedSize is the seed length Sign and PublicKeyFromSeed expect for code.
// For secp256k1 the seed is the private scalar itself.
func SeedSize(code derivation.SelfSigning) int {
	switch code {
	case derivation.Ed25519Sha512:
		return ed25519.SeedSize
	case derivation.ECDSAsecp256k1Sha256:
		return secp256k1.PrivKeyBytesLen
	case derivation.Ed448:
		return ed448.SeedSize
	default:
		return 0
	}
}

// Sign signs msg with the private key held in seed and returns the signature
// tagged with code.
func Sign(code derivation.SelfSigning, seed, msg []byte) (prefix.SelfSigning, error) {
	if err := checkSeed(code, seed); err != nil {
		return prefix.SelfSigning{}, err
	}
	var sig []byte
	switch code {
	case derivation.Ed25519Sha512:
		sig = ed25519.Sign(ed25519.NewKeyFromSeed(seed), msg)
	case derivation.ECDSAsecp256k1Sha256:
		priv, err := secp256k1Key(seed)
		if err != nil {
			return prefix.SelfSigning{}, err
		}
		digest := sha256.Sum256(msg)
		es := ecdsa.Sign(priv, digest[:])
		r, s := es.R(), es.S()
		rb, sb := r.Bytes(), s.Bytes()
		sig = append(rb[:], sb[:]...)
	case derivation.Ed448:
		sig = ed448.Sign(ed448.NewKeyFromSeed(seed), msg, "")
	}
	return prefix.NewSelfSigning(code.Derive(sig)), nil
}

// PublicKeyFromSeed returns the public key Verify expects for code.
// secp256k1 keys are returned in compressed form.
func PublicKeyFromSeed(code derivation.SelfSigning, seed []byte) ([]byte, error) {
	if err := checkSeed(code, seed); err != nil {
		return nil, err
	}
	switch code {
	case derivation.Ed25519Sha512:
		return ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey), nil
	case derivation.ECDSAsecp256k1Sha256:
		priv, err := secp256k1Key(seed)
		if err != nil {
			return nil, err
		}
		return priv.PubKey().SerializeCompressed(), nil
	default:
		return ed448.NewKeyFromSeed(seed).Public().(ed448.PublicKey), nil
	}
}

func checkSeed(code derivation.SelfSigning, seed []byte) error {
	if !code.Valid() {
		return sigError(RuleUnsupportedCode, fmt.Sprintf("unsupported signature code %s", code.Name()))
	}
	if want := SeedSize(code); len(seed) != want {
		return keyError(RuleSeedSize,
			fmt.Sprintf("%s seed must be %d bytes, got %d", code.Name(), want, len(seed)))
	}
	return nil
}

func secp256k1Key(seed []byte) (*secp256k1.PrivateKey, error) {
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(seed); overflow || k.IsZero() {
		return nil, keyError(RuleInvalidSeed, "secp256k1 seed is not a valid private scalar")
	}
	return secp256k1.NewPrivateKey(&k), nil
}
