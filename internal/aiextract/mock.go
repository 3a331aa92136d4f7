package aiextract

import (
	"context"

	"fjacquet/receipt-parser/internal/models"
)

// MockExtractor implements Extractor for testing purposes. It returns
// predefined candidates instead of calling an external model.
type MockExtractor struct {
	Candidates []models.RawCandidate
	Requests   []Request
}

// NewMockExtractor creates a MockExtractor returning the given candidates.
func NewMockExtractor(candidates []models.RawCandidate) *MockExtractor {
	return &MockExtractor{Candidates: candidates}
}

// Extract records the request and returns the predefined candidates.
func (m *MockExtractor) Extract(ctx context.Context, req Request) []models.RawCandidate {
	m.Requests = append(m.Requests, req)
	if m.Candidates == nil {
		return []models.RawCandidate{}
	}
	return m.Candidates
}
