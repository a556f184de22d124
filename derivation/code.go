package derivation

// DerivationCode is implemented by every code catalog.
//
// All methods are pure functions of the code's own identity.
type DerivationCode interface {
	// CodeLen is the number of characters the code occupies in text.
	CodeLen() int
	// DerivativeB64Len is the number of base64 characters of the derived data.
	DerivativeB64Len() int
	// PrefixB64Len is always CodeLen() + DerivativeB64Len().
	PrefixB64Len() int
	// String is the canonical code string.
	String() string
}

// PrefixB64Len returns the total rendered length of a prefix built from c.
func PrefixB64Len(c DerivationCode) int {
	return c.CodeLen() + c.DerivativeB64Len()
}

// RawSize returns the number of raw bytes carried by DerivativeB64Len
// unpadded base64 characters.
func RawSize(c DerivationCode) int {
	return c.DerivativeB64Len() * 6 / 8
}

var (
	_ DerivationCode = SelfAddressing{}
	_ DerivationCode = SelfSigning(0)
)
