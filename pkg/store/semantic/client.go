package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"
)

// ClientConfig contains configuration for the vector-search client.
type ClientConfig struct {
	// BaseURL is the root of the vector-search service.
	BaseURL string

	// Timeout bounds every backend call. Default: 3 seconds.
	Timeout time.Duration
}

// Client talks to the external vector-search service. The connected
// flag is the explicit capability state: a disconnected client answers
// searches with empty results immediately instead of erroring.
type Client struct {
	config    ClientConfig
	http      *http.Client
	logger    *slog.Logger
	connected atomic.Bool
}

// NewClient creates a client for the service at cfg.BaseURL. Call
// Connect before first use; a client that never connects stays in
// degraded mode and is still safe to search.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: slog.Default().With("component", "store.semantic"),
	}
}

// Connect probes the backend health endpoint and records the outcome.
// A failed probe is not an error: the client starts degraded and logs
// the fact once here.
func (c *Client) Connect(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		c.logger.Warn("semantic store unreachable, running in degraded mode", "error", err)
		return
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("semantic store unreachable, running in degraded mode",
			"url", c.config.BaseURL, "error", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("semantic store unhealthy, running in degraded mode",
			"url", c.config.BaseURL, "status", resp.StatusCode)
		return
	}

	c.connected.Store(true)
	c.logger.Info("semantic store connected", "url", c.config.BaseURL)
}

// Connected reports the current capability state.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

type searchRequest struct {
	Query  string   `json:"query"`
	Scopes []string `json:"scopes,omitempty"`
	Limit  int      `json:"limit"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Search returns similarity hits for query within the allowed scopes,
// best-first. It always returns a (possibly empty) slice: transport
// failures flip the client back to degraded mode and degrade to no
// results rather than raising into the pipeline.
func (c *Client) Search(ctx context.Context, query string, scopes []string, limit int) []Result {
	if !c.connected.Load() {
		return nil
	}
	if limit <= 0 {
		limit = 5
	}

	body, err := json.Marshal(searchRequest{Query: query, Scopes: scopes, Limit: limit})
	if err != nil {
		c.logger.Error("semantic search request encode failed", "error", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/v1/search", bytes.NewReader(body))
	if err != nil {
		c.logger.Error("semantic search request build failed", "error", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.connected.Store(false)
		c.logger.Warn("semantic search failed, degrading to empty results", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("semantic search returned error status, degrading to empty results",
			"status", resp.StatusCode)
		return nil
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Warn("semantic search response decode failed, degrading to empty results",
			"error", err)
		return nil
	}

	if len(decoded.Results) > limit {
		decoded.Results = decoded.Results[:limit]
	}
	return decoded.Results
}

// Index submits a document for indexing. Unlike Search this returns an
// error: the seed path wants to know when a write was dropped.
func (c *Client) Index(ctx context.Context, doc Document) error {
	if !c.connected.Load() {
		return fmt.Errorf("semantic store not connected")
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/v1/documents", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build index request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.connected.Store(false)
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("semantic store rejected document: status %d", resp.StatusCode)
	}
	return nil
}

// DeleteScope removes every indexed document for scope. Used by the seed
// path before re-indexing replacement content.
func (c *Client) DeleteScope(ctx context.Context, scope string) error {
	if !c.connected.Load() {
		return fmt.Errorf("semantic store not connected")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.config.BaseURL+"/v1/documents?scope="+url.QueryEscape(scope), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.connected.Store(false)
		return fmt.Errorf("failed to delete scope documents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("semantic store rejected delete: status %d", resp.StatusCode)
	}
	return nil
}
