package redact

import (
	"log/slog"
	"sync"
)

// Engine applies the rule registry and profile passes to text. Redact is
// a pure function of its inputs; the only side effect anywhere in the
// engine is the one-time degraded-mode log line.
type Engine struct {
	recognizer   Recognizer
	logger       *slog.Logger
	degradedOnce sync.Once
}

// NewEngine creates a redaction engine. recognizer may be nil, in which
// case recognize_entities requests silently fall back to the pattern
// rules.
func NewEngine(recognizer Recognizer) *Engine {
	return &Engine{
		recognizer: recognizer,
		logger:     slog.Default().With("component", "redact"),
	}
}

// Redact sanitizes text for the given profile using the named rules.
//
// Rules run in registry order, never caller order. Unknown rule names
// are ignored: the contract is best-effort sanitization, and a misnamed
// rule must not leak raw text through an error path. The profile's
// secondary pass then runs unconditionally. The mask_all sentinel
// expands to every registered rule plus the public pass.
func (e *Engine) Redact(text, profile string, ruleNames []string) string {
	if text == "" {
		return text
	}

	maximal := false
	wantsRecognizer := false
	requested := make(map[string]bool, len(ruleNames))
	for _, name := range ruleNames {
		switch name {
		case RuleMaskAll:
			maximal = true
		case RuleRecognizeEntities:
			wantsRecognizer = true
		default:
			requested[name] = true
		}
	}

	out := text
	for _, rule := range registry {
		if maximal || requested[rule.Name] {
			out = rule.Pattern.ReplaceAllString(out, rule.Replacement)
		}
	}

	if wantsRecognizer {
		out = e.recognize(out)
	}

	if pass, ok := profilePasses[profile]; ok {
		out = pass(out)
	}

	// Maximal redaction always ends with the public pass. The pass is
	// idempotent, so running it twice for the public profile is harmless.
	if maximal {
		out = maskEverything(out)
	}

	return out
}

// recognize runs the optional entity-recognition pass. Unavailable or
// failing recognizers degrade to the input unchanged.
func (e *Engine) recognize(text string) string {
	if e.recognizer == nil {
		e.degradedOnce.Do(func() {
			e.logger.Warn("entity recognizer unavailable, using pattern rules only")
		})
		return text
	}

	redacted, err := e.recognizer.Redact(text)
	if err != nil {
		e.logger.Error("entity recognition failed, keeping pattern-rule output", "error", err)
		return text
	}
	return redacted
}
