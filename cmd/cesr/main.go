package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/multiformats/go-multibase"

	"xdao.co/cesr/cidutil"
	"xdao.co/cesr/compliance"
	"xdao.co/cesr/config"
	"xdao.co/cesr/derivation"
	"xdao.co/cesr/keys"
	"xdao.co/cesr/prefix"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "codes":
		return cmdCodes(args[1:], out, errOut)
	case "digest":
		return cmdDigest(args[1:], out, errOut)
	case "parse":
		return cmdParse(args[1:], out, errOut)
	case "verify-digest":
		return cmdVerifyDigest(args[1:], out, errOut)
	case "sign":
		return cmdSign(args[1:], out, errOut)
	case "verify-sig":
		return cmdVerifySig(args[1:], out, errOut)
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "cesr: CESR derivation code tool")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cesr codes")
	fmt.Fprintln(w, "  cesr digest [--code <code>] [--key-hex <hex> | --key-name <name>] [--config <file>] <file>")
	fmt.Fprintln(w, "  cesr parse [--mode permissive|strict] [--key-hex <hex>] <prefix>")
	fmt.Fprintln(w, "  cesr verify-digest [--mode permissive|strict] [--key-hex <hex> | --key-name <name>] [--config <file>] <prefix> <file>")
	fmt.Fprintln(w, "  cesr sign --code <0B|0C|1AAE> --seed-hex <hex> <file>")
	fmt.Fprintln(w, "  cesr verify-sig --pub-hex <hex> <prefix> <file>")
	fmt.Fprintln(w, "  cesr cid [--multibase <base>] <prefix>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - <file> may be - for stdin")
	fmt.Fprintln(w, "  - keyed codes (F, G) do not carry their key; pass --key-hex or --key-name to verify them")
	fmt.Fprintln(w, "  - --verbose logs each step to stderr")
}

// newFlagSet returns a subcommand flag set with the shared --verbose flag.
func newFlagSet(name string, errOut io.Writer) (*pflag.FlagSet, *bool) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(errOut)
	verbose := fs.BoolP("verbose", "v", false, "Log each step to stderr")
	return fs, verbose
}

func newLogger(verbose bool, errOut io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(errOut), zapcore.DebugLevel))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func cmdCodes(args []string, out io.Writer, errOut io.Writer) int {
	fs, _ := newFlagSet("codes", errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: cesr codes")
		return 2
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Code", "Algorithm", "Code chars", "Derived chars", "Raw bytes"})
	table.SetAutoFormatHeaders(false)
	for _, c := range derivation.SelfAddressingCodes() {
		name := c.Algorithm().String()
		if c.Algorithm().Keyed() {
			name += " (keyed)"
		}
		table.Append(codeRow(c, name))
	}
	for _, c := range derivation.SelfSigningCodes() {
		table.Append(codeRow(c, c.Name()+" signature"))
	}
	table.Render()
	return 0
}

func codeRow(c derivation.DerivationCode, name string) []string {
	return []string{
		c.String(),
		name,
		strconv.Itoa(c.CodeLen()),
		strconv.Itoa(c.DerivativeB64Len()),
		strconv.Itoa(derivation.RawSize(c)),
	}
}

// keyFlags are shared by subcommands that may need a keyed digest code.
type keyFlags struct {
	keyHex     string
	keyName    string
	configPath string
}

func (k *keyFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&k.keyHex, "key-hex", "", "Key for keyed digest codes (F, G), hex encoded")
	fs.StringVar(&k.keyName, "key-name", "", "Name of a key in --config")
	fs.StringVar(&k.configPath, "config", "", "YAML config with default digest and named keys")
}

func (k *keyFlags) load() (config.Config, error) {
	if k.configPath == "" {
		if k.keyName != "" {
			return config.Config{}, fmt.Errorf("--key-name requires --config")
		}
		return config.Config{}, nil
	}
	return config.LoadFile(k.configPath)
}

// key returns the out-of-band key selected by the flags, if any.
func (k *keyFlags) key(cfg config.Config) ([]byte, error) {
	if k.keyHex != "" && k.keyName != "" {
		return nil, fmt.Errorf("conflicting key flags: --key-hex cannot be combined with --key-name")
	}
	if k.keyHex != "" {
		return hex.DecodeString(k.keyHex)
	}
	if k.keyName != "" {
		code, err := cfg.SelfAddressing(k.keyName)
		if err != nil {
			return nil, err
		}
		return code.Key(), nil
	}
	return nil, nil
}

func cmdDigest(args []string, out io.Writer, errOut io.Writer) int {
	fs, verbose := newFlagSet("digest", errOut)
	var codeStr string
	var kf keyFlags
	fs.StringVar(&codeStr, "code", "", "Self-addressing code (default from --config, else E)")
	kf.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: cesr digest [--code <code>] [--key-hex <hex> | --key-name <name>] [--config <file>] <file>")
		return 2
	}
	log := newLogger(*verbose, errOut)
	defer func() { _ = log.Sync() }()

	cfg, err := kf.load()
	if err != nil {
		fmt.Fprintf(errOut, "config: %v\n", err)
		return 2
	}
	key, err := kf.key(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "invalid key: %v\n", err)
		return 2
	}

	var code derivation.SelfAddressing
	switch {
	case codeStr != "":
		code, err = derivation.ParseSelfAddressing(codeStr)
		if err == nil && code.String() != codeStr {
			err = fmt.Errorf("%q is not a bare code", codeStr)
		}
	case kf.keyName != "":
		code, err = cfg.SelfAddressing(kf.keyName)
	default:
		code, err = cfg.Default()
	}
	if err != nil {
		fmt.Fprintf(errOut, "invalid --code: %v\n", err)
		return 2
	}
	if key != nil {
		if code, err = code.WithKey(key); err != nil {
			fmt.Fprintf(errOut, "invalid key: %v\n", err)
			return 2
		}
	}
	if code.Algorithm().Keyed() && !code.HasKey() {
		log.Warn("keyed code without a key; digest is unkeyed", zap.String("code", code.String()))
	}

	b, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read input: %v\n", err)
		return 1
	}
	p := prefix.NewSelfAddressing(code.Derive(b))
	log.Debug("digest",
		zap.String("algorithm", code.Algorithm().String()),
		zap.Int("input_bytes", len(b)),
		zap.Bool("keyed", code.HasKey()))
	_, _ = fmt.Fprintln(out, p.String())
	return 0
}

func cmdParse(args []string, out io.Writer, errOut io.Writer) int {
	fs, verbose := newFlagSet("parse", errOut)
	var modeStr string
	var keyHex string
	fs.StringVar(&modeStr, "mode", "permissive", "Compliance mode: permissive or strict")
	fs.StringVar(&keyHex, "key-hex", "", "Key for keyed digest codes (F, G), hex encoded")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: cesr parse [--mode permissive|strict] [--key-hex <hex>] <prefix>")
		return 2
	}
	log := newLogger(*verbose, errOut)
	defer func() { _ = log.Sync() }()

	opts, code := parseOptions(modeStr, keyHex, errOut)
	if code != 0 {
		return code
	}

	s := fs.Arg(0)
	if p, err := prefix.ParseSelfAddressing(s, opts...); err == nil {
		c := p.Code()
		log.Debug("parsed self-addressing prefix", zap.String("code", c.String()))
		printCode(out, c, c.Algorithm().String(), p.Digest())
		if c.Algorithm().Keyed() && !c.HasKey() {
			_, _ = fmt.Fprintln(out, "key: absent (not encoded in the code)")
		}
		return 0
	} else if !isUnknownCode(err) {
		fmt.Fprintf(errOut, "invalid prefix: %v\n", err)
		return 1
	}

	p, err := prefix.ParseSelfSigning(s, opts...)
	if err != nil {
		fmt.Fprintf(errOut, "invalid prefix: %v\n", err)
		return 1
	}
	log.Debug("parsed self-signing prefix", zap.String("code", p.Code().String()))
	printCode(out, p.Code(), p.Code().Name()+" signature", p.Signature())
	return 0
}

// isUnknownCode reports whether err means "not a self-addressing code", in
// which case the input may still be a self-signing prefix.
func isUnknownCode(err error) bool {
	switch derivation.RuleID(err) {
	case derivation.RuleUnknownCode, derivation.RuleUnknownSubset:
		return true
	}
	return false
}

func printCode(out io.Writer, c derivation.DerivationCode, name string, raw []byte) {
	_, _ = fmt.Fprintf(out, "code: %s\n", c.String())
	_, _ = fmt.Fprintf(out, "algorithm: %s\n", name)
	_, _ = fmt.Fprintf(out, "code_len: %d\n", c.CodeLen())
	_, _ = fmt.Fprintf(out, "derivative_b64_len: %d\n", c.DerivativeB64Len())
	_, _ = fmt.Fprintf(out, "prefix_b64_len: %d\n", c.PrefixB64Len())
	_, _ = fmt.Fprintf(out, "raw: %s\n", hex.EncodeToString(raw))
}

func parseOptions(modeStr, keyHex string, errOut io.Writer) ([]prefix.Option, int) {
	mode, ok := compliance.ParseMode(modeStr)
	if !ok {
		fmt.Fprintf(errOut, "invalid --mode: %q\n", modeStr)
		return nil, 2
	}
	opts := []prefix.Option{prefix.WithMode(mode)}
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --key-hex: %v\n", err)
			return nil, 2
		}
		opts = append(opts, prefix.WithKey(key))
	}
	return opts, 0
}

func cmdVerifyDigest(args []string, out io.Writer, errOut io.Writer) int {
	fs, verbose := newFlagSet("verify-digest", errOut)
	var modeStr string
	var kf keyFlags
	fs.StringVar(&modeStr, "mode", "", "Compliance mode: permissive or strict (default from --config)")
	kf.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: cesr verify-digest [--mode permissive|strict] [--key-hex <hex> | --key-name <name>] [--config <file>] <prefix> <file>")
		return 2
	}
	log := newLogger(*verbose, errOut)
	defer func() { _ = log.Sync() }()

	cfg, err := kf.load()
	if err != nil {
		fmt.Fprintf(errOut, "config: %v\n", err)
		return 2
	}
	key, err := kf.key(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "invalid key: %v\n", err)
		return 2
	}
	mode := cfg.ComplianceMode()
	if modeStr != "" {
		var ok bool
		if mode, ok = compliance.ParseMode(modeStr); !ok {
			fmt.Fprintf(errOut, "invalid --mode: %q\n", modeStr)
			return 2
		}
	}
	opts := []prefix.Option{prefix.WithMode(mode)}
	if key != nil {
		opts = append(opts, prefix.WithKey(key))
	}

	p, err := prefix.ParseSelfAddressing(fs.Arg(0), opts...)
	if err != nil {
		fmt.Fprintf(errOut, "invalid prefix: %v\n", err)
		return 1
	}
	b, err := readInput(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(errOut, "read input: %v\n", err)
		return 1
	}
	log.Debug("verify digest",
		zap.String("algorithm", p.Code().Algorithm().String()),
		zap.Stringer("mode", mode),
		zap.Int("input_bytes", len(b)))
	if !p.Verify(b) {
		fmt.Fprintln(errOut, "digest mismatch")
		return 1
	}
	_, _ = fmt.Fprintln(out, "OK")
	return 0
}

func cmdSign(args []string, out io.Writer, errOut io.Writer) int {
	fs, verbose := newFlagSet("sign", errOut)
	var codeStr string
	var seedHex string
	fs.StringVar(&codeStr, "code", derivation.Ed25519Sha512.String(), "Self-signing code: 0B, 0C or 1AAE")
	fs.StringVar(&seedHex, "seed-hex", "", "Private key seed, hex encoded (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 || seedHex == "" {
		fmt.Fprintln(errOut, "usage: cesr sign --code <0B|0C|1AAE> --seed-hex <hex> <file>")
		return 2
	}
	log := newLogger(*verbose, errOut)
	defer func() { _ = log.Sync() }()

	code, err := derivation.ParseSelfSigning(codeStr)
	if err == nil && code.String() != codeStr {
		err = fmt.Errorf("%q is not a bare code", codeStr)
	}
	if err != nil {
		fmt.Fprintf(errOut, "invalid --code: %v\n", err)
		return 2
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", err)
		return 2
	}
	b, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read input: %v\n", err)
		return 1
	}
	p, err := keys.Sign(code, seed, b)
	if err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}
	if pub, err := keys.PublicKeyFromSeed(code, seed); err == nil {
		log.Info("signed", zap.String("code", code.String()), zap.String("pub_hex", hex.EncodeToString(pub)))
	}
	_, _ = fmt.Fprintln(out, p.String())
	return 0
}

func cmdVerifySig(args []string, out io.Writer, errOut io.Writer) int {
	fs, verbose := newFlagSet("verify-sig", errOut)
	var pubHex string
	fs.StringVar(&pubHex, "pub-hex", "", "Public key, hex encoded (required)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 || pubHex == "" {
		fmt.Fprintln(errOut, "usage: cesr verify-sig --pub-hex <hex> <prefix> <file>")
		return 2
	}
	log := newLogger(*verbose, errOut)
	defer func() { _ = log.Sync() }()

	pub, err := hex.DecodeString(pubHex)
	if err != nil {
		fmt.Fprintf(errOut, "invalid --pub-hex: %v\n", err)
		return 2
	}
	p, err := prefix.ParseSelfSigning(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid prefix: %v\n", err)
		return 1
	}
	b, err := readInput(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(errOut, "read input: %v\n", err)
		return 1
	}
	log.Debug("verify signature", zap.String("code", p.Code().String()), zap.Int("input_bytes", len(b)))
	if err := keys.VerifyPrefix(p, pub, b); err != nil {
		fmt.Fprintf(errOut, "signature invalid: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, "OK")
	return 0
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	fs, verbose := newFlagSet("cid", errOut)
	var base string
	fs.StringVar(&base, "multibase", "", "Print the multihash in this multibase (e.g. base58btc, base64url) instead of a CID")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: cesr cid [--multibase <base>] <prefix>")
		return 2
	}
	log := newLogger(*verbose, errOut)
	defer func() { _ = log.Sync() }()

	p, err := prefix.ParseSelfAddressing(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid prefix: %v\n", err)
		return 1
	}
	if base != "" {
		enc, ok := multibase.Encodings[base]
		if !ok {
			fmt.Fprintf(errOut, "unknown --multibase: %q\n", base)
			return 2
		}
		s, err := cidutil.Multibase(p, enc)
		if err != nil {
			fmt.Fprintf(errOut, "multibase: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(out, s)
		return 0
	}
	c, err := cidutil.CIDv1Raw(p)
	if err != nil {
		fmt.Fprintf(errOut, "cid: %v\n", err)
		return 1
	}
	log.Debug("cid", zap.String("algorithm", p.Code().Algorithm().String()), zap.Uint64("multihash_codec", c.Prefix().MhType))
	_, _ = fmt.Fprintln(out, c.String())
	return 0
}
