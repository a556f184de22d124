package config

import (
	"os"
	"path/filepath"
	"testing"

	"xdao.co/cesr/compliance"
	"xdao.co/cesr/derivation"
)

const sample = `default_digest: 0G
mode: strict
keys:
  - name: tenant-a
    code: F
    key_hex: 000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f
  - name: tenant-b
    code: G
    key_hex: ff
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cesr.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	def, err := cfg.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if def.Algorithm() != derivation.SHA2_512 {
		t.Fatalf("expected SHA2-512 default, got %s", def.Algorithm())
	}
	if cfg.ComplianceMode() != compliance.Strict {
		t.Fatalf("expected strict mode")
	}

	a, err := cfg.SelfAddressing("tenant-a")
	if err != nil {
		t.Fatalf("SelfAddressing: %v", err)
	}
	if a.Algorithm() != derivation.Blake2B256 || len(a.Key()) != 32 {
		t.Fatalf("unexpected tenant-a code %s with %d-byte key", a.Algorithm(), len(a.Key()))
	}
	// Matches the keyed Blake2b-256 conformance vector.
	got := a.Digest([]byte("abcdefghijklmnopqrstuvwxyz0123456789"))
	want, err := derivation.NewKeyedSelfAddressing(derivation.Blake2B256, a.Key())
	if err != nil {
		t.Fatalf("NewKeyedSelfAddressing: %v", err)
	}
	if string(got) != string(want.Digest([]byte("abcdefghijklmnopqrstuvwxyz0123456789"))) {
		t.Fatalf("configured key does not reproduce the digest")
	}

	if _, err := cfg.SelfAddressing("nope"); derivation.RuleID(err) != RuleUnknownName {
		t.Fatalf("expected %s, got %v", RuleUnknownName, err)
	}
}

func TestParse_EmptyDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(empty): %v", err)
	}
	def, err := cfg.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if def.Algorithm() != derivation.Blake3_256 {
		t.Fatalf("expected Blake3-256 default, got %s", def.Algorithm())
	}
	if cfg.ComplianceMode() != compliance.Permissive {
		t.Fatalf("expected permissive mode")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name   string
		doc    string
		ruleID string
	}{
		{"syntax", "keys: [", RuleSyntax},
		{"unknown field", "colour: blue\n", RuleSyntax},
		{"bad default", "default_digest: Z\n", RuleInvalidValue},
		{"default with trailing data", "default_digest: EE\n", RuleInvalidValue},
		{"keyed default", "default_digest: F\n", RuleInvalidValue},
		{"bad mode", "mode: lax\n", RuleInvalidValue},
		{"missing name", "keys:\n  - code: F\n    key_hex: aa\n", RuleInvalidValue},
		{"duplicate", "keys:\n  - {name: a, code: F, key_hex: aa}\n  - {name: a, code: G, key_hex: bb}\n", RuleDuplicateName},
		{"unkeyed code", "keys:\n  - {name: a, code: I, key_hex: aa}\n", RuleInvalidValue},
		{"bad hex", "keys:\n  - {name: a, code: F, key_hex: zz}\n", RuleInvalidValue},
		{"empty key", "keys:\n  - {name: a, code: F, key_hex: \"\"}\n", RuleInvalidValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !derivation.IsKind(err, derivation.KindConfig) {
				t.Fatalf("expected KindConfig, got %v", err)
			}
			if got := derivation.RuleID(err); got != tc.ruleID {
				t.Fatalf("expected %s, got %s (%v)", tc.ruleID, got, err)
			}
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(""); derivation.RuleID(err) != RuleEmptyPath {
		t.Fatalf("expected %s, got %v", RuleEmptyPath, err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); derivation.RuleID(err) != RuleRead {
		t.Fatalf("expected %s, got %v", RuleRead, err)
	}
}
