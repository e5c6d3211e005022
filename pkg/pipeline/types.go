package pipeline

import "time"

// Citation provenance types.
const (
	CitationSemantic   = "semantic"
	CitationStructured = "structured"
)

// Request is one context-assembly request.
type Request struct {
	SessionID string   `json:"session_id"`
	Profile   string   `json:"profile"`
	Scopes    []string `json:"scopes"`
	Prompt    string   `json:"prompt"`

	// CallerIdentity is the raw credential presented with the request.
	// It is digested before it reaches the audit log and is never part
	// of the response.
	CallerIdentity string `json:"-"`
}

// Citation records where one surviving fragment came from. It carries
// enough provenance for later audit review without re-exposing content.
type Citation struct {
	Type  string  `json:"type"`
	Ref   string  `json:"ref"`
	Score float64 `json:"score,omitempty"`
}

// Result is the assembled, redacted context.
type Result struct {
	RedactedText string     `json:"redacted_text"`
	Citations    []Citation `json:"citations"`
	ExpiresAt    time.Time  `json:"expires_at"`
}
