// Package cli provides shared helpers for mediator commands: typed
// command errors, output formatting, and signal-aware contexts.
package cli
