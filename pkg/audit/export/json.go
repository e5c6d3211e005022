package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"synm-hq/mediator/pkg/audit"
)

// JSONExporter exports audit events to JSON format.
type JSONExporter struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes events to w as a JSON array.
func (e *JSONExporter) Export(ctx context.Context, events []*audit.Event, w io.Writer) error {
	if len(events) == 0 {
		_, err := w.Write([]byte("[]"))
		return err
	}

	var (
		data []byte
		err  error
	)
	if e.Pretty {
		data, err = json.MarshalIndent(events, "", "  ")
	} else {
		data, err = json.Marshal(events)
	}
	if err != nil {
		return fmt.Errorf("json export of %d events failed: %w", len(events), err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("json export write failed: %w", err)
	}
	return nil
}
