// Package aiextract packages a document and its extracted text into a prompt
// for an external classification model and parses the model's JSON-array
// response into transaction candidates.
//
// The adapter's job is "talk to the model", not "trust the model": its
// output is returned unvalidated and the normalization pipeline owns all
// field-by-field checking. Every failure mode (missing credential, network
// error, malformed output) collapses to an empty candidate list so callers
// can fall back to heuristic extraction without an error path.
package aiextract

import (
	"context"

	"fjacquet/receipt-parser/internal/models"
)

// Request carries one document into an extraction attempt.
type Request struct {
	// Content is the raw uploaded file.
	Content []byte
	// MIMEType is the document's media type (application/pdf or image/*).
	MIMEType string
	// Text is plain text already recovered from the document by the
	// text-extraction collaborator; empty for pure images.
	Text string
}

// Extractor defines the interface for AI-based candidate extraction.
// This abstraction allows the pipeline to be tested independently of
// external API calls and provides flexibility in choosing AI providers.
//
// Extract is total: implementations must absorb provider failures and
// return an empty slice, never an error. Callers treat empty as "try the
// fallback strategy", not as a hard failure.
type Extractor interface {
	Extract(ctx context.Context, req Request) []models.RawCandidate
}
