package compliance

// ComplianceMode selects how strictly rendered prefixes are accepted.
//
// Permissive accepts every prefix the master code table allows, including
// keyed digest codes whose key cannot be recovered from text.
// Strict refuses anything that cannot be checked as written: keyed digest
// codes without a caller-supplied key, and derived data whose base64 is not
// in canonical form.
type ComplianceMode int

const (
	Permissive ComplianceMode = iota
	Strict
)

func (m ComplianceMode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseMode maps "permissive" or "strict" (empty means permissive).
func ParseMode(s string) (ComplianceMode, bool) {
	switch s {
	case "", "permissive":
		return Permissive, true
	case "strict":
		return Strict, true
	default:
		return Permissive, false
	}
}
