package derivation

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindDeserialize covers every failure to recognize a derivation code or
	// a rendered prefix in text.
	KindDeserialize Kind = "Deserialize"
	KindKey         Kind = "Key"
	KindSignature   Kind = "Signature"
	KindMultiformat Kind = "Multiformat"
	KindConfig      Kind = "Config"
)

// Rule IDs for code parsing. Other packages define their own under the same
// Error type.
const (
	RuleEmptyCode     = "CESR-CODE-001"
	RuleUnknownCode   = "CESR-CODE-002"
	RuleUnknownSubset = "CESR-CODE-003"
	RuleTruncatedCode = "CESR-CODE-004"

	RuleKeyNotKeyed = "CESR-KEY-001"
	RuleKeyTooLong  = "CESR-KEY-002"
)

// Error is the structured error type shared by every package of this module.
//
// RuleID is a stable identifier (e.g., CESR-CODE-001) that names the violated
// rule. Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns a structured error without a cause.
func NewError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// WrapError returns a structured error wrapping cause. A nil cause yields the
// same value as NewError.
func WrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

func deserializeError(ruleID, msg string) error {
	return NewError(KindDeserialize, ruleID, msg)
}
