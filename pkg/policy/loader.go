package policy

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadError reports a problem with the policy directory as a whole.
// Individual malformed files are not errors; they are logged and skipped.
type LoadError struct {
	Dir     string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("policy load [dir=%s]: %s: %v", e.Dir, e.Message, e.Cause)
	}
	return fmt.Sprintf("policy load [dir=%s]: %s", e.Dir, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads every *.yaml / *.yml file under dir and merges them into a
// single immutable Document.
//
// Files merge in lexical filename order, last-write-wins per top-level
// profile/scope key. A file that fails to parse is logged and skipped so
// the remaining valid sources still apply (partial-load tolerance). A
// missing or unreadable directory is a hard error: a mediator with no
// policy at all must not start.
func Load(dir string) (*Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Message: "directory not accessible", Cause: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Dir: dir, Message: "not a directory"}
	}

	logger := slog.Default().With("component", "policy")

	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, &LoadError{Dir: dir, Message: "glob failed", Cause: err}
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	doc := &Document{
		Profiles: make(map[string]ProfileConfig),
		Scopes:   make(map[string]ScopeConfig),
	}

	loaded := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("skipping unreadable policy file", "path", path, "error", err)
			continue
		}

		var src sourceFile
		if err := yaml.Unmarshal(data, &src); err != nil {
			logger.Error("skipping malformed policy file", "path", path, "error", err)
			continue
		}

		for name, profile := range src.Profiles {
			doc.Profiles[name] = profile
		}
		for name, scope := range src.Scopes {
			doc.Scopes[name] = scope
		}
		if src.Defaults != nil && src.Defaults.TTLMinutes > 0 {
			doc.Defaults.TTLMinutes = src.Defaults.TTLMinutes
		}

		loaded++
		logger.Info("loaded policy file", "path", filepath.Base(path))
	}

	logger.Info("policy documents merged",
		"files", loaded,
		"profiles", len(doc.Profiles),
		"scopes", len(doc.Scopes),
	)

	return doc, nil
}
