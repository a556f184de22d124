package keys

import "xdao.co/cesr/derivation"

const (
	RuleUnsupportedCode  = "CESR-SIG-001"
	RuleSignatureLength  = "CESR-SIG-002"
	RuleInvalidPublicKey = "CESR-SIG-003"
	RuleInvalidSignature = "CESR-SIG-004"

	RuleSeedSize    = "CESR-KEY-003"
	RuleInvalidSeed = "CESR-KEY-004"
)

func sigError(ruleID, msg string) error {
	return derivation.NewError(derivation.KindSignature, ruleID, msg)
}

func keyError(ruleID, msg string) error {
	return derivation.NewError(derivation.KindKey, ruleID, msg)
}
