package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"synm-hq/mediator/pkg/audit"
)

// CSVExporter exports audit events to CSV format.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{IncludeHeader: includeHeader}
}

// Export writes events to w in CSV format. Metadata is flattened to a
// single JSON-encoded column.
func (e *CSVExporter) Export(ctx context.Context, events []*audit.Event, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(headerRow()); err != nil {
			return fmt.Errorf("csv export header failed: %w", err)
		}
	}

	for _, ev := range events {
		row, err := eventToRow(ev)
		if err != nil {
			return fmt.Errorf("csv export of seq %d failed: %w", ev.Seq, err)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csv export write failed: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func headerRow() []string {
	return []string{
		"seq", "timestamp", "event_type", "session_id", "profile",
		"identity_hash", "metadata", "hash", "previous_hash",
	}
}

func eventToRow(ev *audit.Event) ([]string, error) {
	metadata := ""
	if ev.Metadata != nil {
		data, err := json.Marshal(ev.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = string(data)
	}

	return []string{
		strconv.FormatInt(ev.Seq, 10),
		ev.Timestamp.UTC().Format(time.RFC3339Nano),
		ev.EventType,
		ev.SessionID,
		ev.Profile,
		ev.IdentityHash,
		metadata,
		ev.Hash,
		ev.PreviousHash,
	}, nil
}
