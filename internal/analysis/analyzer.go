package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"hia/internal/domain"
	"hia/internal/extract"
	"hia/internal/port"
)

// Request carries one analysis invocation. At least one of Text or FileBytes
// must be present; this is validated at the orchestrator boundary, not deeper.
type Request struct {
	Text            string
	FileBytes       []byte
	FileContentType string
	Role            domain.Role
}

// InputKind describes which inputs a request carried, for the report log.
func (r *Request) InputKind() string {
	switch {
	case len(r.FileBytes) > 0 && strings.TrimSpace(r.Text) != "":
		return "mixed"
	case len(r.FileBytes) > 0:
		return "file"
	default:
		return "text"
	}
}

// Result is the caller-facing outcome of one pipeline invocation.
// Parameters are present only for non-privileged, successfully parsed results.
type Result struct {
	Succeeded  bool               `json:"succeeded"`
	Text       string             `json:"text"`
	Parameters []domain.Parameter `json:"parameters,omitempty"`
	Warnings   []string           `json:"warnings,omitempty"`
	ModelUsed  string             `json:"model_used"`
}

// Analyzer orchestrates the report-analysis pipeline: extraction, policy
// selection, generation and sanitization. It is stateless between
// invocations; stages within one request run strictly sequentially.
type Analyzer struct {
	completer port.ChatCompleter
	extractor port.TextExtractor
	sanitizer *Sanitizer
	textModel string
}

// NewAnalyzer wires the pipeline. completer should already carry the
// transient-retry decoration; the analyzer adds no outer retry loop.
func NewAnalyzer(completer port.ChatCompleter, extractor port.TextExtractor, sanitizer *Sanitizer, textModel string) *Analyzer {
	return &Analyzer{
		completer: completer,
		extractor: extractor,
		sanitizer: sanitizer,
		textModel: textModel,
	}
}

// Analyze runs the pipeline for one request.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && len(req.FileBytes) == 0 {
		return nil, domain.ErrInvalidAnalysisInput
	}

	toAnalyze := text
	if len(req.FileBytes) > 0 {
		extracted, err := a.extractor.Extract(ctx, req.FileBytes, req.FileContentType)
		if err != nil {
			return nil, mapExtractionError(err)
		}
		// Extracted content is primary; user-supplied text is appended as notes.
		if text != "" {
			toAnalyze = extracted + "\n\nAdditional Notes:\n" + text
		} else {
			toAnalyze = extracted
		}
	}

	policy := SelectPolicy(req.Role)
	messages := []port.Message{
		port.TextMessage("system", policy.SystemInstruction),
		port.TextMessage("user", analyzeUserPrompt+toAnalyze),
	}

	reply, err := a.completer.Complete(ctx, a.textModel, messages)
	if err != nil {
		// Upstream error bodies may contain provider-internal detail; log the
		// cause, surface a generic failure.
		log.Printf("analysis.Analyzer: generation failed (model=%s, policy=%s): %v", a.textModel, policy.Name, err)
		return nil, fmt.Errorf("%w: model %s", domain.ErrGenerationFailed, a.textModel)
	}

	if !policy.Sanitize {
		return &Result{Succeeded: true, Text: reply, ModelUsed: a.textModel}, nil
	}

	outcome := a.sanitizer.Process(reply)
	if !outcome.Succeeded {
		log.Printf("analysis.Analyzer: sanitizer shortfall, returning best-effort text (warnings: %v)", outcome.Warnings)
	}
	return &Result{
		Succeeded:  outcome.Succeeded,
		Text:       outcome.Text,
		Parameters: outcome.Parameters,
		Warnings:   outcome.Warnings,
		ModelUsed:  a.textModel,
	}, nil
}

func mapExtractionError(err error) error {
	var extErr *extract.Error
	if errors.As(err, &extErr) && extErr.Kind == extract.KindRateLimited {
		return fmt.Errorf("%w: %v", domain.ErrExtractionRateLimited, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
}
