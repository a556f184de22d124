package keys

import (
	"testing"

	"xdao.co/cesr/derivation"
	"xdao.co/cesr/prefix"
)

func seedFor(t *testing.T, code derivation.SelfSigning, b byte) []byte {
	t.Helper()
	seed := make([]byte, SeedSize(code))
	for i := range seed {
		seed[i] = b + byte(i)
	}
	return seed
}

func TestSign_VerifiesForEveryCode(t *testing.T) {
	msg := []byte("hello")
	for _, code := range derivation.SelfSigningCodes() {
		seed := seedFor(t, code, 0x11)
		pub, err := PublicKeyFromSeed(code, seed)
		if err != nil {
			t.Fatalf("%s PublicKeyFromSeed: %v", code.Name(), err)
		}
		p, err := Sign(code, seed, msg)
		if err != nil {
			t.Fatalf("%s Sign: %v", code.Name(), err)
		}
		if p.Code() != code {
			t.Fatalf("expected %s prefix, got %s", code.Name(), p.Code().Name())
		}
		if len(p.Signature()) != code.SignatureSize() {
			t.Fatalf("%s: signature is %d bytes, want %d", code.Name(), len(p.Signature()), code.SignatureSize())
		}
		if len(p.String()) != code.PrefixB64Len() {
			t.Fatalf("%s: rendered prefix is %d chars, want %d", code.Name(), len(p.String()), code.PrefixB64Len())
		}
		if err := VerifyPrefix(p, pub, msg); err != nil {
			t.Fatalf("%s VerifyPrefix: %v", code.Name(), err)
		}

		parsed, err := prefix.ParseSelfSigning(p.String())
		if err != nil {
			t.Fatalf("%s ParseSelfSigning: %v", code.Name(), err)
		}
		if err := VerifyPrefix(parsed, pub, msg); err != nil {
			t.Fatalf("%s verify parsed: %v", code.Name(), err)
		}

		err = Verify(code, pub, []byte("hellO"), p.Signature())
		if derivation.RuleID(err) != RuleInvalidSignature {
			t.Fatalf("%s: expected %s for a tampered message, got %v", code.Name(), RuleInvalidSignature, err)
		}
	}
}

func TestSign_Deterministic(t *testing.T) {
	for _, code := range []derivation.SelfSigning{derivation.Ed25519Sha512, derivation.ECDSAsecp256k1Sha256, derivation.Ed448} {
		seed := seedFor(t, code, 0x42)
		a, err := Sign(code, seed, []byte("m"))
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		b, err := Sign(code, seed, []byte("m"))
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if !a.Equal(b) {
			t.Fatalf("%s: expected deterministic signatures", code.Name())
		}
	}
}

func TestVerify_Errors(t *testing.T) {
	code := derivation.Ed25519Sha512
	seed := seedFor(t, code, 0x01)
	pub, err := PublicKeyFromSeed(code, seed)
	if err != nil {
		t.Fatalf("PublicKeyFromSeed: %v", err)
	}
	p, err := Sign(code, seed, []byte("m"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := Verify(code, pub, []byte("m"), p.Signature()[:10]); derivation.RuleID(err) != RuleSignatureLength {
		t.Fatalf("expected %s, got %v", RuleSignatureLength, err)
	}
	if err := Verify(code, pub[:31], []byte("m"), p.Signature()); derivation.RuleID(err) != RuleInvalidPublicKey {
		t.Fatalf("expected %s, got %v", RuleInvalidPublicKey, err)
	}
	if err := Verify(derivation.SelfSigning(0), pub, []byte("m"), p.Signature()); derivation.RuleID(err) != RuleUnsupportedCode {
		t.Fatalf("expected %s, got %v", RuleUnsupportedCode, err)
	}
	if err := Verify(derivation.Ed448, make([]byte, 57), []byte("m"), make([]byte, 114)); !derivation.IsKind(err, derivation.KindSignature) {
		t.Fatalf("expected a signature error for an all-zero Ed448 signature, got %v", err)
	}
	if err := Verify(derivation.ECDSAsecp256k1Sha256, []byte{0x02}, []byte("m"), make([]byte, 64)); derivation.RuleID(err) != RuleInvalidPublicKey {
		t.Fatalf("expected %s, got %v", RuleInvalidPublicKey, err)
	}
}

func TestSeedErrors(t *testing.T) {
	if _, err := Sign(derivation.Ed448, make([]byte, 32), nil); derivation.RuleID(err) != RuleSeedSize {
		t.Fatalf("expected %s, got %v", RuleSeedSize, err)
	}
	if _, err := Sign(derivation.ECDSAsecp256k1Sha256, make([]byte, 32), nil); derivation.RuleID(err) != RuleInvalidSeed {
		t.Fatalf("expected %s for a zero scalar, got %v", RuleInvalidSeed, err)
	}
	if _, err := PublicKeyFromSeed(derivation.SelfSigning(9), nil); derivation.RuleID(err) != RuleUnsupportedCode {
		t.Fatalf("expected %s, got %v", RuleUnsupportedCode, err)
	}
}
