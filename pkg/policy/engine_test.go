package policy

import (
	"reflect"
	"testing"
)

func testDocument() *Document {
	return &Document{
		Profiles: map[string]ProfileConfig{
			"work": {
				AllowedScopes: []string{"bio.basic", "work.history"},
				Redactions:    []string{"mask_emails", "drop_phone"},
			},
			"public": {
				AllowedScopes: []string{"bio.basic"},
				Redactions:    []string{"mask_all"},
			},
		},
		Scopes: map[string]ScopeConfig{
			"bio.basic": {Description: "Basic biographical facts", Sensitivity: "low"},
		},
		Defaults: Defaults{TTLMinutes: 15},
	}
}

// TestCheckAccess_AllowedScopes tests the positive and negative access
// cases for a known profile.
func TestCheckAccess_AllowedScopes(t *testing.T) {
	engine := NewEngine(testDocument())

	tests := []struct {
		name    string
		profile string
		scopes  []string
		want    bool
	}{
		{"all scopes allowed", "work", []string{"bio.basic", "work.history"}, true},
		{"single allowed scope", "public", []string{"bio.basic"}, true},
		{"one scope not allowed", "public", []string{"bio.basic", "work.history"}, false},
		{"unknown scope", "work", []string{"finances.full"}, false},
		{"empty scopes vacuously true", "work", nil, true},
		{"unknown profile", "ghost", []string{"bio.basic"}, false},
		{"unknown profile empty scopes", "ghost", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.CheckAccess(tt.profile, tt.scopes); got != tt.want {
				t.Errorf("CheckAccess(%q, %v) = %v, want %v", tt.profile, tt.scopes, got, tt.want)
			}
		})
	}
}

// TestRedactionRulesFor tests rule lookup and the fail-closed sentinel.
func TestRedactionRulesFor(t *testing.T) {
	engine := NewEngine(testDocument())

	if got := engine.RedactionRulesFor("work"); !reflect.DeepEqual(got, []string{"mask_emails", "drop_phone"}) {
		t.Errorf("unexpected rules for work: %v", got)
	}

	if got := engine.RedactionRulesFor("ghost"); !reflect.DeepEqual(got, []string{"mask_all"}) {
		t.Errorf("unknown profile must get the mask_all sentinel, got %v", got)
	}
}

// TestRedactionRulesFor_CopyIsolation tests that callers cannot mutate
// the frozen document through the returned slice.
func TestRedactionRulesFor_CopyIsolation(t *testing.T) {
	engine := NewEngine(testDocument())

	rules := engine.RedactionRulesFor("work")
	rules[0] = "tampered"

	if got := engine.RedactionRulesFor("work")[0]; got != "mask_emails" {
		t.Errorf("document mutated through returned slice: %q", got)
	}
}

// TestDefaultTTLMinutes tests the configured and fallback TTL values.
func TestDefaultTTLMinutes(t *testing.T) {
	if got := NewEngine(testDocument()).DefaultTTLMinutes(); got != 15 {
		t.Errorf("expected configured TTL 15, got %d", got)
	}

	empty := NewEngine(&Document{})
	if got := empty.DefaultTTLMinutes(); got != defaultTTLMinutes {
		t.Errorf("expected fallback TTL %d, got %d", defaultTTLMinutes, got)
	}
}

// TestScopeConfig tests the scope lookup.
func TestScopeConfig(t *testing.T) {
	engine := NewEngine(testDocument())

	cfg, ok := engine.ScopeConfig("bio.basic")
	if !ok || cfg.Sensitivity != "low" {
		t.Errorf("expected bio.basic scope config, got %+v ok=%v", cfg, ok)
	}

	if _, ok := engine.ScopeConfig("missing"); ok {
		t.Error("expected missing scope to report absent")
	}
}
