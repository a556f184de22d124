package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/cloudflare/circl/sign/ed448"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"xdao.co/cesr/derivation"
	"xdao.co/cesr/prefix"
)

// Verify checks that sig is a valid code signature of msg under pub.
// It returns nil on success.
func Verify(code derivation.SelfSigning, pub, msg, sig []byte) error {
	if !code.Valid() {
		return sigError(RuleUnsupportedCode, fmt.Sprintf("unsupported signature code %s", code.Name()))
	}
	if want := code.SignatureSize(); len(sig) != want {
		return sigError(RuleSignatureLength,
			fmt.Sprintf("invalid %s signature length: got %d want %d", code.Name(), len(sig), want))
	}
	switch code {
	case derivation.Ed25519Sha512:
		return verifyEd25519(pub, msg, sig)
	case derivation.ECDSAsecp256k1Sha256:
		return verifySecp256k1(pub, msg, sig)
	case derivation.Ed448:
		return verifyEd448(pub, msg, sig)
	default:
		return sigError(RuleUnsupportedCode, fmt.Sprintf("unsupported signature code %s", code.Name()))
	}
}

// VerifyPrefix is Verify for a parsed self-signing prefix.
func VerifyPrefix(p prefix.SelfSigning, pub, msg []byte) error {
	return Verify(p.Code(), pub, msg, p.Signature())
}

func verifyEd25519(pub, msg, sig []byte) error {
	if len(pub) != ed25519.PublicKeySize {
		return sigError(RuleInvalidPublicKey,
			fmt.Sprintf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub)))
	}
	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return derivation.WrapError(derivation.KindSignature, RuleInvalidPublicKey, "invalid ed25519 public key", err)
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), msg, sig) {
		return sigError(RuleInvalidSignature, "signature invalid")
	}
	return nil
}

func verifySecp256k1(pub, msg, sig []byte) error {
	pk, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return derivation.WrapError(derivation.KindSignature, RuleInvalidPublicKey, "invalid secp256k1 public key", err)
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return sigError(RuleInvalidSignature, "signature r out of range")
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return sigError(RuleInvalidSignature, "signature s out of range")
	}
	digest := sha256.Sum256(msg)
	if !ecdsa.NewSignature(&r, &s).Verify(digest[:], pk) {
		return sigError(RuleInvalidSignature, "signature invalid")
	}
	return nil
}

func verifyEd448(pub, msg, sig []byte) error {
	if len(pub) != ed448.PublicKeySize {
		return sigError(RuleInvalidPublicKey,
			fmt.Sprintf("ed448 public key must be %d bytes, got %d", ed448.PublicKeySize, len(pub)))
	}
	if !ed448.Verify(ed448.PublicKey(pub), msg, sig, "") {
		return sigError(RuleInvalidSignature, "signature invalid")
	}
	return nil
}
