package policy

// Document is the merged, immutable view of every policy source file.
// It is produced once by Load and never mutated afterwards, so concurrent
// reads need no locking.
type Document struct {
	Profiles map[string]ProfileConfig
	Scopes   map[string]ScopeConfig
	Defaults Defaults
}

// ProfileConfig describes one caller context: the scopes it may read and
// the redaction rules applied to everything it reads.
type ProfileConfig struct {
	AllowedScopes []string `yaml:"allowed_scopes"`
	Redactions    []string `yaml:"redactions"`
}

// ScopeConfig carries per-scope settings.
type ScopeConfig struct {
	Description string `yaml:"description"`
	Sensitivity string `yaml:"sensitivity"`
}

// Defaults holds document-wide fallback values.
type Defaults struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

// sourceFile is the unmarshal target for a single policy file. Defaults
// is a pointer so a file that omits the section does not clobber values
// from earlier files.
type sourceFile struct {
	Profiles map[string]ProfileConfig `yaml:"profiles"`
	Scopes   map[string]ScopeConfig   `yaml:"scopes"`
	Defaults *Defaults                `yaml:"defaults"`
}
