package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestCollector_RecordRequest tests request counting by operation and
// outcome.
func TestCollector_RecordRequest(t *testing.T) {
	c := NewCollector(true)

	c.RecordRequest("context", "success", 5*time.Millisecond)
	c.RecordRequest("context", "success", 7*time.Millisecond)
	c.RecordRequest("context", "forbidden", time.Millisecond)

	if got := testutil.ToFloat64(c.requestsTotal.WithLabelValues("context", "success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.requestsTotal.WithLabelValues("context", "forbidden")); got != 1 {
		t.Errorf("forbidden count = %v, want 1", got)
	}
}

// TestCollector_RecordAuditEvent tests audit event counting.
func TestCollector_RecordAuditEvent(t *testing.T) {
	c := NewCollector(true)

	c.RecordAuditEvent("context_provided")
	c.RecordAuditEvent("context_provided")
	c.RecordAuditEvent("session_created")

	if got := testutil.ToFloat64(c.auditEventsTotal.WithLabelValues("context_provided")); got != 2 {
		t.Errorf("context_provided count = %v, want 2", got)
	}
}

// TestCollector_SemanticConnected tests the backend state gauge.
func TestCollector_SemanticConnected(t *testing.T) {
	c := NewCollector(true)

	c.SetSemanticConnected(true)
	if got := testutil.ToFloat64(c.semanticConnected); got != 1 {
		t.Errorf("gauge = %v, want 1", got)
	}

	c.SetSemanticConnected(false)
	if got := testutil.ToFloat64(c.semanticConnected); got != 0 {
		t.Errorf("gauge = %v, want 0", got)
	}
}

// TestCollector_DisabledRecordsNothing tests that a disabled collector
// is inert.
func TestCollector_DisabledRecordsNothing(t *testing.T) {
	c := NewCollector(false)

	c.RecordRequest("context", "success", time.Millisecond)
	c.RecordAuditEvent("session_created")
	c.SetSemanticConnected(true)

	families, err := c.registry.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	if len(families) != 0 {
		t.Errorf("disabled collector registered %d metric families", len(families))
	}
}
