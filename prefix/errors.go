package prefix

import "xdao.co/cesr/derivation"

const (
	RuleLengthMismatch      = "CESR-PREFIX-001"
	RuleTruncatedDerivative = "CESR-PREFIX-002"
	RuleInvalidBase64       = "CESR-PREFIX-003"
	RuleDerivativeSize      = "CESR-PREFIX-004"
	RuleNonCanonical        = "CESR-PREFIX-005"
	RuleMissingKey          = "CESR-PREFIX-006"
)

func deserializeError(ruleID, msg string) error {
	return derivation.NewError(derivation.KindDeserialize, ruleID, msg)
}

func wrapDeserializeError(ruleID, msg string, cause error) error {
	return derivation.WrapError(derivation.KindDeserialize, ruleID, msg, cause)
}
