package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputRejectionError(t *testing.T) {
	err := &InputRejectionError{MIMEType: "text/plain", Size: 42, Reason: "unsupported file type, use PDF or image"}
	assert.Contains(t, err.Error(), "text/plain")
	assert.Contains(t, err.Error(), "42")
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestDataExtractionError(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &DataExtractionError{Source: "pdftotext", Reason: "conversion failed", Err: inner}
	assert.Contains(t, err.Error(), "pdftotext")
	assert.ErrorIs(t, err, inner)

	bare := &DataExtractionError{Source: "pdftotext", Reason: "empty output"}
	assert.Contains(t, bare.Error(), "empty output")
	assert.NoError(t, bare.Unwrap())
}
