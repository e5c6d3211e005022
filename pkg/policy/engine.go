package policy

// defaultTTLMinutes applies when no policy file sets defaults.ttl_minutes.
const defaultTTLMinutes = 20

// maskAllSentinel is returned as the sole redaction rule for unknown
// profiles. The redaction engine interprets it as maximal redaction, so
// an unconfigured profile can never read unredacted content.
const maskAllSentinel = "mask_all"

// Engine answers authorization and rule-lookup queries against a frozen
// Document. All methods are read-only and safe for concurrent use.
type Engine struct {
	doc *Document
}

// NewEngine wraps a loaded Document.
func NewEngine(doc *Document) *Engine {
	return &Engine{doc: doc}
}

// CheckAccess reports whether profile may read every one of the
// requested scopes. Unknown profiles are denied outright. An empty scope
// list is vacuously allowed.
func (e *Engine) CheckAccess(profile string, requestedScopes []string) bool {
	cfg, ok := e.doc.Profiles[profile]
	if !ok {
		return false
	}

	allowed := make(map[string]bool, len(cfg.AllowedScopes))
	for _, scope := range cfg.AllowedScopes {
		allowed[scope] = true
	}

	for _, scope := range requestedScopes {
		if !allowed[scope] {
			return false
		}
	}
	return true
}

// RedactionRulesFor returns the profile's configured redaction rules in
// policy order. Unknown profiles get the maximal-redaction sentinel,
// never an empty rule set.
func (e *Engine) RedactionRulesFor(profile string) []string {
	cfg, ok := e.doc.Profiles[profile]
	if !ok {
		return []string{maskAllSentinel}
	}

	rules := make([]string, len(cfg.Redactions))
	copy(rules, cfg.Redactions)
	return rules
}

// DefaultTTLMinutes returns the configured session TTL default.
func (e *Engine) DefaultTTLMinutes() int {
	if e.doc.Defaults.TTLMinutes > 0 {
		return e.doc.Defaults.TTLMinutes
	}
	return defaultTTLMinutes
}

// ScopeConfig returns the configuration for scope, if present.
func (e *Engine) ScopeConfig(scope string) (ScopeConfig, bool) {
	cfg, ok := e.doc.Scopes[scope]
	return cfg, ok
}

// Profiles returns the names of every configured profile.
func (e *Engine) Profiles() []string {
	names := make([]string, 0, len(e.doc.Profiles))
	for name := range e.doc.Profiles {
		names = append(names, name)
	}
	return names
}

// AllowedScopes returns the scopes profile may read, or nil for unknown
// profiles.
func (e *Engine) AllowedScopes(profile string) []string {
	cfg, ok := e.doc.Profiles[profile]
	if !ok {
		return nil
	}

	scopes := make([]string, len(cfg.AllowedScopes))
	copy(scopes, cfg.AllowedScopes)
	return scopes
}
