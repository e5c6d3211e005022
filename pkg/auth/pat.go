package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// VerifyPAT checks a presented personal access token against the
// configured one in constant time. An empty configured token matches
// nothing: an unconfigured deployment must not accept an empty bearer.
func VerifyPAT(configured, presented string) bool {
	if configured == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(presented)) == 1
}

// DigestToken returns the hex digest stored wherever a credential must
// be referenced durably, such as a session's owner token hash.
func DigestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
