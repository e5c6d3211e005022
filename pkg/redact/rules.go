package redact

import "regexp"

const (
	// RuleMaskAll is the maximal-redaction sentinel. It expands to every
	// registered rule plus the public secondary pass, and is what the
	// policy engine returns for unknown profiles.
	RuleMaskAll = "mask_all"

	// RuleRecognizeEntities requests the optional entity-recognition pass
	// in addition to the pattern rules.
	RuleRecognizeEntities = "recognize_entities"
)

// Rule pairs a compiled matcher with the token that replaces its matches.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// registry holds every built-in rule in application order. Order is part
// of the contract: the credit card pattern must run before the phone
// pattern so a 16-digit card number is not partially consumed as a phone
// match. Replacement tokens contain no digits and no lowercase letters,
// which keeps every rule idempotent over already-redacted text.
var registry = []Rule{
	{
		Name:        "mask_credit_card",
		Pattern:     regexp.MustCompile(`(?i)\b(?:\d{4}[\s-]?){3}\d{4}\b`),
		Replacement: "[CREDIT_CARD]",
	},
	{
		Name:        "mask_ssn",
		Pattern:     regexp.MustCompile(`(?i)\b\d{3}-\d{2}-\d{4}\b`),
		Replacement: "[SSN]",
	},
	{
		Name:        "mask_emails",
		Pattern:     regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		Replacement: "[EMAIL]",
	},
	{
		Name:        "drop_phone",
		Pattern:     regexp.MustCompile(`(?i)(\+?[1-9]\d{0,2}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`),
		Replacement: "[PHONE]",
	},
	{
		Name:        "drop_exact_address",
		Pattern:     regexp.MustCompile(`(?i)\d+\s+[\w\s]+(?:street|st|avenue|ave|road|rd|highway|hwy|lane|ln|drive|dr|court|ct|circle|cir|boulevard|blvd)\b`),
		Replacement: "[ADDRESS]",
	},
	{
		Name:        "mask_ip",
		Pattern:     regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
		Replacement: "[IP_ADDRESS]",
	},
}

// AvailableRules returns the names of all registered rules in application
// order, plus the sentinel names understood by the engine.
func AvailableRules() []string {
	names := make([]string, 0, len(registry)+2)
	for _, rule := range registry {
		names = append(names, rule.Name)
	}
	names = append(names, RuleRecognizeEntities, RuleMaskAll)
	return names
}
