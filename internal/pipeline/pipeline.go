// Package pipeline wires the extraction strategies together: boundary
// validation, text extraction, AI-first candidate extraction with a
// deterministic heuristic fallback, and final normalization.
//
// Each extraction request is processed synchronously and independently; no
// shared mutable state exists across requests, so any number of requests may
// run concurrently without coordination. Each strategy is attempted at most
// once per request: failure advances to the next strategy or to a terminal
// empty result, never to a retry.
package pipeline

import (
	"context"
	"strings"

	"fjacquet/receipt-parser/internal/aiextract"
	"fjacquet/receipt-parser/internal/config"
	"fjacquet/receipt-parser/internal/heuristic"
	"fjacquet/receipt-parser/internal/logging"
	"fjacquet/receipt-parser/internal/models"
	"fjacquet/receipt-parser/internal/normalizer"
	"fjacquet/receipt-parser/internal/parsererror"
	"fjacquet/receipt-parser/internal/textextract"
)

// Provider identifiers reported in extraction results.
const (
	ProviderGemini    = "gemini"
	ProviderHeuristic = "heuristic"
)

// Document is one uploaded file entering the pipeline.
type Document struct {
	Content  []byte
	MIMEType string
}

// Result is the outcome of one extraction request. An empty Transactions
// slice means "no transactions found", which is distinct from an error:
// the pipeline surfaces errors only for boundary rejection.
type Result struct {
	Transactions []models.Transaction
	// Provider names the strategy that produced the candidates: "gemini",
	// "heuristic", or "" when nothing produced any.
	Provider string
}

// Pipeline executes extraction requests. All dependencies are injected at
// construction and never mutated afterwards.
type Pipeline struct {
	cfg        *config.Config
	ai         aiextract.Extractor
	text       textextract.Extractor
	normalizer *normalizer.Normalizer
	logger     logging.Logger
}

// New creates a Pipeline with the given collaborators.
func New(cfg *config.Config, ai aiextract.Extractor, text textextract.Extractor, norm *normalizer.Normalizer, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{
		cfg:        cfg,
		ai:         ai,
		text:       text,
		normalizer: norm,
		logger:     logger,
	}
}

// ValidateDocument enforces the request boundary: file-size ceiling and
// MIME-type allow-list. It runs before any extraction so an oversized or
// unsupported document never consumes AI-provider quota.
func (p *Pipeline) ValidateDocument(doc Document) error {
	if len(doc.Content) == 0 {
		return &parsererror.InputRejectionError{
			MIMEType: doc.MIMEType,
			Size:     0,
			Reason:   "document is empty",
		}
	}

	if int64(len(doc.Content)) > p.cfg.MaxFileSizeBytes() {
		return &parsererror.InputRejectionError{
			MIMEType: doc.MIMEType,
			Size:     int64(len(doc.Content)),
			Reason:   "file too large",
		}
	}

	for _, prefix := range p.cfg.Pipeline.AllowedMIMEPrefixes {
		if strings.HasPrefix(doc.MIMEType, prefix) {
			return nil
		}
	}
	return &parsererror.InputRejectionError{
		MIMEType: doc.MIMEType,
		Size:     int64(len(doc.Content)),
		Reason:   "unsupported file type, use PDF or image",
	}
}

// Extract runs one document through the full pipeline. The returned error is
// non-nil only for boundary rejection; every downstream failure degrades to
// the next strategy or to an empty result.
func (p *Pipeline) Extract(ctx context.Context, doc Document) (Result, error) {
	if err := p.ValidateDocument(doc); err != nil {
		return Result{}, err
	}

	extractedText := p.extractText(doc)

	provider := ProviderGemini
	candidates := p.ai.Extract(ctx, aiextract.Request{
		Content:  doc.Content,
		MIMEType: doc.MIMEType,
		Text:     extractedText,
	})

	if len(candidates) == 0 {
		p.logger.Debug("AI extraction empty, falling back to heuristic extraction")
		provider = ProviderHeuristic
		candidates = heuristic.Extract(extractedText)
	}

	if len(candidates) == 0 {
		return Result{Transactions: []models.Transaction{}}, nil
	}

	transactions := p.normalizer.Normalize(candidates)

	p.logger.WithFields(
		logging.Field{Key: logging.FieldProvider, Value: provider},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Info("Extraction completed")

	return Result{Transactions: transactions, Provider: provider}, nil
}

// extractText recovers plain text from text-bearing documents. Best-effort:
// a failing text extractor is logged and treated as "no text".
func (p *Pipeline) extractText(doc Document) string {
	if doc.MIMEType != "application/pdf" {
		return ""
	}

	text, err := p.text.ExtractText(doc.Content)
	if err != nil {
		p.logger.WithError(err).Warn("PDF text extraction failed, continuing without text")
		return ""
	}
	return strings.TrimSpace(text)
}
