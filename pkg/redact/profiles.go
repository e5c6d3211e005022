package redact

import "regexp"

// secondaryPass further sanitizes text after the named rules run. Passes
// are selected by profile name from profilePasses; adding a profile is a
// table entry, not a new branch.
type secondaryPass func(string) string

var profilePasses = map[string]secondaryPass{
	"work":   maskPersonalDetails,
	"public": maskEverything,
}

var (
	datePattern = regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`)
	agePattern  = regexp.MustCompile(`(?i)\b\d{1,2}\s+years?\s+old\b`)
	kinPattern  = regexp.MustCompile(`(?i)\b(?:wife|husband|spouse|partner|child|children|son|daughter|mother|father|parent)\b`)

	numberPattern     = regexp.MustCompile(`\b\d+\b`)
	properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	urlPattern        = regexp.MustCompile(`(?i)https?://[^\s]+`)
)

// maskPersonalDetails hides personal details while keeping professional
// content readable: spelled-out dates, age references, and family
// relationship terms.
func maskPersonalDetails(text string) string {
	text = datePattern.ReplaceAllString(text, "[DATE]")
	text = agePattern.ReplaceAllString(text, "[AGE]")
	text = kinPattern.ReplaceAllString(text, "[FAMILY]")
	return text
}

// maskEverything is the public-profile pass: bare numbers, capitalized
// words (a cheap proper-noun heuristic), and URLs. The replacement tokens
// are all-caps, so reapplying the pass leaves its own output untouched.
func maskEverything(text string) string {
	text = numberPattern.ReplaceAllString(text, "[NUMBER]")
	text = properNounPattern.ReplaceAllString(text, "[NAME]")
	text = urlPattern.ReplaceAllString(text, "[URL]")
	return text
}
