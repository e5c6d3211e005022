// Package config loads, defaults, and validates mediator configuration.
//
// Configuration comes from a YAML file, with MEDIATOR_* environment
// variables taking precedence over file values. Loading always follows
// the same sequence: parse YAML, apply defaults, apply environment
// overrides, validate. The loaded Config is a plain value passed into
// constructors; nothing in this package holds process-wide state.
package config
