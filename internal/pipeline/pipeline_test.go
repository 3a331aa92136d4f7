package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/receipt-parser/internal/aiextract"
	"fjacquet/receipt-parser/internal/categorizer"
	"fjacquet/receipt-parser/internal/config"
	"fjacquet/receipt-parser/internal/models"
	"fjacquet/receipt-parser/internal/normalizer"
	"fjacquet/receipt-parser/internal/parsererror"
	"fjacquet/receipt-parser/internal/store"
	"fjacquet/receipt-parser/internal/textextract"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.AI.Enabled = true
	cfg.AI.MaxTextChars = 20000
	cfg.Pipeline.MaxFileSizeMB = 10
	cfg.Pipeline.AllowedMIMEPrefixes = []string{"application/pdf", "image/"}
	return cfg
}

func newTestPipeline(cfg *config.Config, ai aiextract.Extractor, text textextract.Extractor) *Pipeline {
	norm := normalizer.New(categorizer.NewCategorizer(store.DefaultCategories(), nil), nil)
	return New(cfg, ai, text, norm, nil)
}

func TestValidateDocument(t *testing.T) {
	p := newTestPipeline(testConfig(), aiextract.NewMockExtractor(nil), textextract.NewMockExtractor("", nil))

	tests := []struct {
		name     string
		doc      Document
		rejected bool
	}{
		{"PDF accepted", Document{Content: []byte("%PDF-1.4"), MIMEType: "application/pdf"}, false},
		{"PNG accepted", Document{Content: []byte{0x89, 0x50}, MIMEType: "image/png"}, false},
		{"JPEG accepted", Document{Content: []byte{0xFF, 0xD8}, MIMEType: "image/jpeg"}, false},
		{"Empty document rejected", Document{Content: nil, MIMEType: "application/pdf"}, true},
		{"Text rejected", Document{Content: []byte("hello"), MIMEType: "text/plain"}, true},
		{"CSV rejected", Document{Content: []byte("a,b"), MIMEType: "text/csv"}, true},
		{"Missing MIME rejected", Document{Content: []byte("data"), MIMEType: ""}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := p.ValidateDocument(tc.doc)
			if tc.rejected {
				var rejection *parsererror.InputRejectionError
				assert.ErrorAs(t, err, &rejection)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDocumentSizeCeiling(t *testing.T) {
	p := newTestPipeline(testConfig(), aiextract.NewMockExtractor(nil), textextract.NewMockExtractor("", nil))

	atLimit := Document{Content: bytes.Repeat([]byte{0x0}, 10*1024*1024), MIMEType: "application/pdf"}
	assert.NoError(t, p.ValidateDocument(atLimit))

	overLimit := Document{Content: bytes.Repeat([]byte{0x0}, 10*1024*1024+1), MIMEType: "application/pdf"}
	err := p.ValidateDocument(overLimit)
	var rejection *parsererror.InputRejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, int64(10*1024*1024+1), rejection.Size)
}

func TestExtractUsesAIFirst(t *testing.T) {
	ai := aiextract.NewMockExtractor([]models.RawCandidate{
		{Amount: -4.5, Type: "expense", Raw: "Coffee Shop", Date: "2025-01-15"},
	})
	p := newTestPipeline(testConfig(), ai, textextract.NewMockExtractor("Coffee Shop  4.50", nil))

	result, err := p.Extract(context.Background(), Document{Content: []byte("%PDF"), MIMEType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, result.Provider)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Coffee Shop", result.Transactions[0].Description)
	assert.Equal(t, "-4.5", result.Transactions[0].Amount.String())

	// the AI adapter received both the binary and the extracted text
	require.Len(t, ai.Requests, 1)
	assert.Equal(t, "application/pdf", ai.Requests[0].MIMEType)
	assert.Equal(t, "Coffee Shop  4.50", ai.Requests[0].Text)
}

func TestExtractFallsBackToHeuristic(t *testing.T) {
	p := newTestPipeline(testConfig(), aiextract.NewMockExtractor(nil),
		textextract.NewMockExtractor("Coffee Shop .... $4.50", nil))

	result, err := p.Extract(context.Background(), Document{Content: []byte("%PDF"), MIMEType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, ProviderHeuristic, result.Provider)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Coffee Shop", result.Transactions[0].Description)
	assert.Equal(t, "-4.5", result.Transactions[0].Amount.String())
	assert.Equal(t, models.TypeExpense, result.Transactions[0].Type)
}

func TestExtractEmptyTerminal(t *testing.T) {
	p := newTestPipeline(testConfig(), aiextract.NewMockExtractor(nil),
		textextract.NewMockExtractor("no prices in this text", nil))

	result, err := p.Extract(context.Background(), Document{Content: []byte("%PDF"), MIMEType: "application/pdf"})
	require.NoError(t, err)
	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Provider)
}

func TestExtractTextFailureNonFatal(t *testing.T) {
	ai := aiextract.NewMockExtractor([]models.RawCandidate{
		{Amount: -10.0, Type: "expense", Raw: "Item"},
	})
	p := newTestPipeline(testConfig(), ai,
		textextract.NewMockExtractor("", errors.New("pdftotext not found")))

	result, err := p.Extract(context.Background(), Document{Content: []byte("%PDF"), MIMEType: "application/pdf"})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Empty(t, ai.Requests[0].Text)
}

func TestExtractImageSkipsTextExtraction(t *testing.T) {
	ai := aiextract.NewMockExtractor([]models.RawCandidate{
		{Amount: -4.5, Type: "expense", Raw: "Coffee"},
	})
	text := textextract.NewMockExtractor("should never be used", nil)
	p := newTestPipeline(testConfig(), ai, text)

	_, err := p.Extract(context.Background(), Document{Content: []byte{0x89, 0x50}, MIMEType: "image/png"})
	require.NoError(t, err)
	require.Len(t, ai.Requests, 1)
	assert.Empty(t, ai.Requests[0].Text)
}

func TestExtractRejectionBeforeAI(t *testing.T) {
	ai := aiextract.NewMockExtractor([]models.RawCandidate{{Amount: -1.0, Raw: "x"}})
	p := newTestPipeline(testConfig(), ai, textextract.NewMockExtractor("", nil))

	_, err := p.Extract(context.Background(), Document{Content: []byte("hello"), MIMEType: "text/plain"})
	assert.Error(t, err)
	assert.Empty(t, ai.Requests)
}
