package compliance

import "testing"

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want ComplianceMode
		ok   bool
	}{
		{"", Permissive, true},
		{"permissive", Permissive, true},
		{"strict", Strict, true},
		{"Strict", Permissive, false},
		{"lenient", Permissive, false},
	}
	for _, tc := range cases {
		got, ok := ParseMode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
	if Strict.String() != "strict" || ComplianceMode(7).String() != "unknown" {
		t.Fatalf("unexpected String values")
	}
}
