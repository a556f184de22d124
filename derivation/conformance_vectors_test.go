package derivation

import (
	"bufio"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConformanceVectors_Digests(t *testing.T) {
	path := filepath.Join("..", "testdata", "conformance", "cesr", "digests.txt")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open vectors: %v", err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			t.Fatalf("malformed vector line %q", line)
		}
		code, err := ParseSelfAddressing(fields[0])
		if err != nil {
			t.Fatalf("ParseSelfAddressing(%q): %v", fields[0], err)
		}
		if code.String() != fields[0] {
			t.Fatalf("code %q parsed as %q", fields[0], code.String())
		}
		if fields[1] != "-" {
			key, err := hex.DecodeString(fields[1])
			if err != nil {
				t.Fatalf("decode key: %v", err)
			}
			if code, err = code.WithKey(key); err != nil {
				t.Fatalf("WithKey: %v", err)
			}
		}
		if got := render(code.Derive(alphabet)); got != fields[2] {
			t.Fatalf("%s (key %s): got %s want %s", code.Algorithm(), fields[1], got, fields[2])
		}
		n++
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("read vectors: %v", err)
	}
	if n == 0 {
		t.Fatalf("no vectors read")
	}
}

func TestConformanceVectors_CodeTable(t *testing.T) {
	var got []string
	for _, c := range SelfAddressingCodes() {
		got = append(got, c.String())
	}
	for _, c := range SelfSigningCodes() {
		got = append(got, c.String())
	}
	want := []string{"E", "F", "G", "H", "I", "0D", "0E", "0F", "0G", "0B", "0C", "1AAE"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("code table mismatch (-want +got):\n%s", diff)
	}
}
