package config

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"xdao.co/cesr/compliance"
	"xdao.co/cesr/derivation"
)

// Config holds the settings a caller cannot recover from prefixes alone:
// keys for keyed digest codes and the default digest code.
//
// Example:
//
//	default_digest: E
//	mode: strict
//	keys:
//	  - name: tenant-a
//	    code: F
//	    key_hex: 000102030405060708090a0b0c0d0e0f
type Config struct {
	DefaultDigest string      `yaml:"default_digest,omitempty"`
	Mode          string      `yaml:"mode,omitempty"`
	Keys          []KeyConfig `yaml:"keys,omitempty"`
}

// KeyConfig names a keyed self-addressing code.
type KeyConfig struct {
	Name   string `yaml:"name"`
	Code   string `yaml:"code"`
	KeyHex string `yaml:"key_hex"`
}

const (
	RuleEmptyPath     = "CESR-CFG-001"
	RuleRead          = "CESR-CFG-002"
	RuleSyntax        = "CESR-CFG-003"
	RuleInvalidValue  = "CESR-CFG-004"
	RuleDuplicateName = "CESR-CFG-005"
	RuleUnknownName   = "CESR-CFG-006"
)

func cfgError(ruleID, msg string) error {
	return derivation.NewError(derivation.KindConfig, ruleID, msg)
}

func wrapCfgError(ruleID, msg string, cause error) error {
	return derivation.WrapError(derivation.KindConfig, ruleID, msg, cause)
}

// LoadFile reads and validates a YAML config.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, cfgError(RuleEmptyPath, "config: empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, wrapCfgError(RuleRead, "config: read", err)
	}
	return Parse(b)
}

// Parse decodes and validates YAML config bytes. Unknown fields are rejected.
func Parse(b []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	// An empty document is a valid empty config.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, wrapCfgError(RuleSyntax, "config: decode", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.DefaultDigest != "" {
		if _, err := c.Default(); err != nil {
			return err
		}
	}
	if _, ok := compliance.ParseMode(c.Mode); !ok {
		return cfgError(RuleInvalidValue, fmt.Sprintf("config: invalid mode %q", c.Mode))
	}
	seen := make(map[string]struct{}, len(c.Keys))
	for _, k := range c.Keys {
		if k.Name == "" {
			return cfgError(RuleInvalidValue, "config: key name is required")
		}
		if _, ok := seen[k.Name]; ok {
			return cfgError(RuleDuplicateName, fmt.Sprintf("config: duplicate key name %q", k.Name))
		}
		seen[k.Name] = struct{}{}
		if _, err := k.selfAddressing(); err != nil {
			return err
		}
	}
	return nil
}

// Default returns the configured default digest code, Blake3-256 when unset.
func (c Config) Default() (derivation.SelfAddressing, error) {
	if c.DefaultDigest == "" {
		return derivation.NewSelfAddressing(derivation.Blake3_256), nil
	}
	code, err := parseExactCode(c.DefaultDigest)
	if err != nil {
		return derivation.SelfAddressing{}, wrapCfgError(RuleInvalidValue, "config: default_digest", err)
	}
	if code.Algorithm().Keyed() {
		return derivation.SelfAddressing{}, cfgError(RuleInvalidValue,
			fmt.Sprintf("config: default_digest %s is keyed; name a key instead", code))
	}
	return code, nil
}

// ComplianceMode returns the configured parsing mode.
func (c Config) ComplianceMode() compliance.ComplianceMode {
	m, _ := compliance.ParseMode(c.Mode)
	return m
}

// SelfAddressing returns the keyed code registered under name.
func (c Config) SelfAddressing(name string) (derivation.SelfAddressing, error) {
	for _, k := range c.Keys {
		if k.Name == name {
			return k.selfAddressing()
		}
	}
	return derivation.SelfAddressing{}, cfgError(RuleUnknownName, fmt.Sprintf("config: unknown key name %q", name))
}

func (k KeyConfig) selfAddressing() (derivation.SelfAddressing, error) {
	code, err := parseExactCode(k.Code)
	if err != nil {
		return derivation.SelfAddressing{}, wrapCfgError(RuleInvalidValue, fmt.Sprintf("config: key %q code", k.Name), err)
	}
	key, err := hex.DecodeString(k.KeyHex)
	if err != nil {
		return derivation.SelfAddressing{}, wrapCfgError(RuleInvalidValue, fmt.Sprintf("config: key %q key_hex", k.Name), err)
	}
	if len(key) == 0 {
		return derivation.SelfAddressing{}, cfgError(RuleInvalidValue, fmt.Sprintf("config: key %q has an empty key", k.Name))
	}
	code, err = code.WithKey(key)
	if err != nil {
		return derivation.SelfAddressing{}, wrapCfgError(RuleInvalidValue, fmt.Sprintf("config: key %q", k.Name), err)
	}
	return code, nil
}

// parseExactCode parses s as a bare code string with nothing after it.
func parseExactCode(s string) (derivation.SelfAddressing, error) {
	code, err := derivation.ParseSelfAddressing(s)
	if err != nil {
		return derivation.SelfAddressing{}, err
	}
	if code.String() != s {
		return derivation.SelfAddressing{}, derivation.NewError(derivation.KindDeserialize, derivation.RuleUnknownCode,
			fmt.Sprintf("%q is not a bare self-addressing code", s))
	}
	return code, nil
}
