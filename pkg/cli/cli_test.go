package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// TestConfigError tests error message formatting with and without a
// field name.
func TestConfigError(t *testing.T) {
	err := NewConfigError("server.listen_address", "not host:port")
	if !strings.Contains(err.Error(), "server.listen_address") {
		t.Errorf("unexpected message %q", err.Error())
	}

	err = NewConfigError("", "file unreadable")
	if strings.Contains(err.Error(), "in :") {
		t.Errorf("empty field leaked into message %q", err.Error())
	}
}

// TestCommandError tests wrapping and unwrapping.
func TestCommandError(t *testing.T) {
	cause := errors.New("boom")
	err := NewCommandError("audit verify", cause)

	if !strings.Contains(err.Error(), "audit verify") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause should unwrap")
	}
}

// TestFormatters tests output format selection and emission.
func TestFormatters(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON).FormatTo(&buf, map[string]int{"records": 3}); err != nil {
		t.Fatalf("json format failed: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil || decoded["records"] != 3 {
		t.Errorf("bad json output %q: %v", buf.String(), err)
	}

	buf.Reset()
	if err := NewFormatter(FormatText).FormatTo(&buf, "plain"); err != nil {
		t.Fatalf("text format failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "plain" {
		t.Errorf("bad text output %q", buf.String())
	}
}
