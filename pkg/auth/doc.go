// Package auth verifies caller credentials. Two credential kinds are
// accepted: the long-lived personal access token from configuration,
// and short-lived capability tokens minted by the authenticate
// operation. Raw credentials never reach storage or the audit log;
// anything persisted is a one-way digest.
package auth
