package auth

import (
	"strings"
	"testing"
	"time"
)

// TestVerifyPAT tests the constant-time credential check.
func TestVerifyPAT(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		presented  string
		want       bool
	}{
		{"match", "secret-token", "secret-token", true},
		{"mismatch", "secret-token", "wrong-token", false},
		{"empty presented", "secret-token", "", false},
		{"unconfigured rejects everything", "", "", false},
		{"unconfigured rejects non-empty", "", "anything", false},
		{"prefix is not a match", "secret-token", "secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPAT(tt.configured, tt.presented); got != tt.want {
				t.Errorf("VerifyPAT(%q, %q) = %v, want %v", tt.configured, tt.presented, got, tt.want)
			}
		})
	}
}

// TestDigestToken tests that digests are stable and never echo the raw
// credential.
func TestDigestToken(t *testing.T) {
	digest := DigestToken("secret-token")
	if digest == "" || strings.Contains(digest, "secret-token") {
		t.Errorf("unexpected digest %q", digest)
	}
	if digest != DigestToken("secret-token") {
		t.Error("digest is not deterministic")
	}
	if digest == DigestToken("other-token") {
		t.Error("different credentials must not share a digest")
	}
}

// TestTokenService_IssueAndValidate tests the round trip.
func TestTokenService_IssueAndValidate(t *testing.T) {
	service := NewTokenService("signing-key", "mediator", time.Hour)

	token, expiresAt, err := service.Issue("secret-token")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	if until := time.Until(expiresAt); until < 59*time.Minute || until > time.Hour {
		t.Errorf("unexpected expiry %v", expiresAt)
	}

	claims, err := service.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.TokenDigest != DigestToken("secret-token") {
		t.Errorf("claims carry wrong digest: %q", claims.TokenDigest)
	}
	if claims.Issuer != "mediator" {
		t.Errorf("claims carry wrong issuer: %q", claims.Issuer)
	}
	if strings.Contains(token, "secret-token") {
		t.Error("raw credential leaked into the token")
	}
}

// TestTokenService_RejectsWrongKey tests that tokens signed with a
// different key fail validation.
func TestTokenService_RejectsWrongKey(t *testing.T) {
	token, _, err := NewTokenService("key-a", "mediator", time.Hour).Issue("secret")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	if _, err := NewTokenService("key-b", "mediator", time.Hour).Validate(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

// TestTokenService_RejectsExpired tests expiry enforcement.
func TestTokenService_RejectsExpired(t *testing.T) {
	service := NewTokenService("signing-key", "mediator", time.Hour)
	service.ttl = -time.Minute

	token, _, err := service.Issue("secret")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	if _, err := service.Validate(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

// TestTokenService_RejectsGarbage tests malformed input.
func TestTokenService_RejectsGarbage(t *testing.T) {
	service := NewTokenService("signing-key", "mediator", time.Hour)
	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := service.Validate(input); err != ErrInvalidToken {
			t.Errorf("Validate(%q): expected ErrInvalidToken, got %v", input, err)
		}
	}
}
