// Package parsererror defines the typed errors surfaced by the extraction
// pipeline and its collaborators.
//
// The pipeline itself is total: extraction and normalization failures are
// absorbed (empty result, fallback strategy) rather than raised. The only
// error callers must handle is InputRejectionError, which fires at the
// request boundary before any provider quota is spent.
package parsererror

import "fmt"

// InputRejectionError reports a document rejected at the request boundary:
// oversized file or unsupported MIME type. It is user-actionable and is
// raised before the pipeline runs.
type InputRejectionError struct {
	MIMEType string
	Size     int64
	Reason   string
}

func (e *InputRejectionError) Error() string {
	return fmt.Sprintf("document rejected (mime=%s, size=%d): %s", e.MIMEType, e.Size, e.Reason)
}

// DataExtractionError represents an error where required data could not be
// extracted from a document, even though the document itself was accepted.
type DataExtractionError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data extraction failed (%s): %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("data extraction failed (%s): %s", e.Source, e.Reason)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}
