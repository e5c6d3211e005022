package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"synm-hq/mediator/pkg/audit"
	"synm-hq/mediator/pkg/policy"
	"synm-hq/mediator/pkg/redact"
	"synm-hq/mediator/pkg/session"
	"synm-hq/mediator/pkg/store/semantic"
	"synm-hq/mediator/pkg/store/structured"
)

// Bounds on the semantic result count. Requests never choose these;
// they come from configuration and are capped here.
const (
	defaultSemanticLimit = 5
	maxSemanticLimit     = 10
)

// Default byte ceiling for assembled context.
const defaultByteCeiling = 4096

// promptPreviewBytes bounds the prompt excerpt recorded in the audit
// metadata.
const promptPreviewBytes = 100

// Config contains assembly tuning knobs.
type Config struct {
	// SemanticLimit is the maximum semantic result count per request.
	// Non-positive selects the default; values above the hard cap are
	// clamped.
	SemanticLimit int

	// ByteCeiling bounds the redacted context size in bytes.
	ByteCeiling int
}

// Assembler orchestrates context assembly across the session store,
// policy engine, retrieval collaborators, redaction engine, and audit
// chain. It holds no mutable state of its own; all methods are safe for
// concurrent use.
type Assembler struct {
	sessions   *session.Service
	policies   *policy.Engine
	redactor   *redact.Engine
	semantic   semantic.Searcher
	structured structured.Store
	chain      *audit.Chain
	config     Config
	logger     *slog.Logger
	now        func() time.Time
}

// NewAssembler wires the pipeline. All collaborators are required
// except the semantic searcher, which may be nil when no backend is
// configured.
func NewAssembler(
	sessions *session.Service,
	policies *policy.Engine,
	redactor *redact.Engine,
	searcher semantic.Searcher,
	store structured.Store,
	chain *audit.Chain,
	config Config,
) *Assembler {
	if config.SemanticLimit <= 0 {
		config.SemanticLimit = defaultSemanticLimit
	}
	if config.SemanticLimit > maxSemanticLimit {
		config.SemanticLimit = maxSemanticLimit
	}
	if config.ByteCeiling <= 0 {
		config.ByteCeiling = defaultByteCeiling
	}

	return &Assembler{
		sessions:   sessions,
		policies:   policies,
		redactor:   redactor,
		semantic:   searcher,
		structured: store,
		chain:      chain,
		config:     config,
		logger:     slog.Default().With("component", "pipeline"),
		now:        time.Now,
	}
}

// Assemble runs the full pipeline for req. Rejections carry a Category;
// any other error is an internal failure. A rejection before the gather
// step writes nothing anywhere: no partial content, no audit entry (the
// call site records the denied attempt).
func (a *Assembler) Assemble(ctx context.Context, req Request) (*Result, error) {
	sess, err := a.validateSession(ctx, req)
	if err != nil {
		return nil, err
	}

	if !a.policies.CheckAccess(sess.Profile, req.Scopes) {
		return nil, NewError(CategoryForbidden, "profile is not allowed the requested scopes")
	}

	fragments, citations := a.gather(ctx, req, sess.Profile)

	text := strings.Join(fragments, "\n\n")
	redacted := a.redactor.Redact(text, sess.Profile, a.policies.RedactionRulesFor(sess.Profile))
	redacted = truncate(redacted, a.config.ByteCeiling)

	_, err = a.chain.Append(ctx, audit.Entry{
		EventType:      audit.EventContextProvided,
		SessionID:      sess.ID,
		Profile:        sess.Profile,
		CallerIdentity: req.CallerIdentity,
		Metadata: map[string]any{
			"scopes":          req.Scopes,
			"prompt_preview":  promptPreview(req.Prompt),
			"context_size":    len(redacted),
			"citations_count": len(citations),
		},
	})
	if err != nil {
		return nil, WrapError(CategoryAuditWriteFailure, "context disclosure could not be audited", err)
	}

	a.logger.Info("context assembled",
		"session_id", sess.ID,
		"profile", sess.Profile,
		"scopes", req.Scopes,
		"context_size", len(redacted),
		"citations", len(citations),
	)

	return &Result{
		RedactedText: redacted,
		Citations:    citations,
		ExpiresAt:    sess.ExpiresAt,
	}, nil
}

// validateSession is the first gate: the session must exist, not be
// revoked, match the requested profile, and not be expired.
func (a *Assembler) validateSession(ctx context.Context, req Request) (*session.Session, error) {
	sess, err := a.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if sess == nil {
		return nil, NewError(CategoryNotFound, "unknown session")
	}
	if req.Profile != "" && req.Profile != sess.Profile {
		// The taxonomy deliberately collapses "wrong profile" into the
		// same category as a missing session.
		return nil, NewError(CategoryNotFound, "unknown session")
	}
	if sess.Expired(a.now().UTC()) {
		return nil, NewError(CategoryExpired, "session has expired")
	}
	return sess, nil
}

// gather queries the semantic collaborator first, then the structured
// store once per requested scope, deduplicating by content fingerprint
// with first-seen-wins ordering. Backend failures degrade to fewer
// fragments and are never surfaced to the caller.
func (a *Assembler) gather(ctx context.Context, req Request, profile string) ([]string, []Citation) {
	var fragments []string
	var citations []Citation
	seen := make(map[string]bool)

	add := func(content string, citation Citation) {
		if content == "" {
			return
		}
		fp := fingerprint(content)
		if seen[fp] {
			return
		}
		seen[fp] = true
		fragments = append(fragments, content)
		citations = append(citations, citation)
	}

	if a.semantic != nil {
		for _, hit := range a.semantic.Search(ctx, req.Prompt, req.Scopes, a.config.SemanticLimit) {
			add(hit.Content, Citation{Type: CitationSemantic, Ref: hit.Source, Score: hit.Score})
		}
	}

	for _, scope := range req.Scopes {
		data, err := a.structured.GetScopeData(ctx, scope)
		if err != nil {
			a.logger.Warn("structured store degraded, continuing without scope",
				"scope", scope, "profile", profile, "error", err)
			continue
		}
		if data == nil {
			continue
		}
		add(data.Content, Citation{Type: CitationStructured, Ref: scope})
	}

	return fragments, citations
}

// promptPreview bounds the prompt excerpt stored in audit metadata to
// promptPreviewBytes, cut at a rune boundary.
func promptPreview(prompt string) string {
	if len(prompt) <= promptPreviewBytes {
		return prompt
	}
	cut := prompt[:promptPreviewBytes]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
