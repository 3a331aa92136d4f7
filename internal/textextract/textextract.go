// Package textextract recovers plain text from PDF documents. It is a
// best-effort collaborator: extraction failure is logged and non-fatal,
// callers proceed with empty text.
package textextract

import (
	"fmt"
	"os"
	"os/exec"

	"fjacquet/receipt-parser/internal/logging"
	"fjacquet/receipt-parser/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Extractor defines the interface for extracting text from document bytes.
// This interface allows for dependency injection and makes the pipeline
// testable by providing different implementations for production and testing.
type Extractor interface {
	// ExtractText extracts the text content of a PDF document.
	// Returns the extracted text or an error if extraction fails.
	ExtractText(content []byte) (string, error)
}

// PdftotextExtractor implements Extractor using the pdftotext command.
// This is the production implementation that requires pdftotext to be installed.
type PdftotextExtractor struct{}

// NewPdftotextExtractor creates a new PdftotextExtractor instance.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{}
}

// ExtractText writes the document to a temporary file and extracts its text
// with pdftotext -layout, preserving the column alignment the heuristic
// extractor depends on.
func (e *PdftotextExtractor) ExtractText(content []byte) (string, error) {
	tempFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			log.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}()

	if _, err := tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		return "", fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	textFile := tempFile.Name() + ".txt"
	defer func() {
		if err := os.Remove(textFile); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warn("Failed to remove temporary text file",
				logging.Field{Key: logging.FieldFile, Value: textFile})
		}
	}()

	cmd := exec.Command("pdftotext", "-layout", tempFile.Name(), textFile)
	if err := cmd.Run(); err != nil {
		return "", &parsererror.DataExtractionError{
			Source: "pdftotext",
			Reason: "conversion failed",
			Err:    err,
		}
	}

	output, err := os.ReadFile(textFile)
	if err != nil {
		return "", &parsererror.DataExtractionError{
			Source: "pdftotext",
			Reason: "could not read extracted text",
			Err:    err,
		}
	}

	return string(output), nil
}

// MockExtractor implements Extractor for testing purposes.
// It returns predefined mock data instead of running pdftotext.
type MockExtractor struct {
	MockText string
	MockErr  error
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(content []byte) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
