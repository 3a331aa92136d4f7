package aiextract

import (
	"context"
	"strings"

	"fjacquet/receipt-parser/internal/config"
	"fjacquet/receipt-parser/internal/logging"
	"fjacquet/receipt-parser/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements the Extractor interface using the Google
// Gemini API. A missing API key is a valid, checked state: Extract returns
// an empty list immediately instead of failing at construction time.
type GeminiExtractor struct {
	cfg    *config.Config
	logger logging.Logger

	client *genai.Client
	model  *genai.GenerativeModel

	categoryNames []string
}

// NewGeminiExtractor creates a new GeminiExtractor. The genai client is
// created lazily on the first extraction attempt so that a process without
// a credential still starts cleanly.
func NewGeminiExtractor(cfg *config.Config, categoryNames []string, logger logging.Logger) *GeminiExtractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &GeminiExtractor{
		cfg:           cfg,
		logger:        logger,
		categoryNames: categoryNames,
	}
}

// Extract sends the document and prompt to Gemini and parses the JSON-array
// response. Any failure (no credential, client error, malformed response)
// yields an empty list.
func (g *GeminiExtractor) Extract(ctx context.Context, req Request) []models.RawCandidate {
	if !g.cfg.AI.Enabled {
		g.logger.Debug("AI extraction disabled by configuration")
		return []models.RawCandidate{}
	}
	if g.cfg.AI.APIKey == "" {
		g.logger.Warn("No Gemini API key configured, skipping AI extraction")
		return []models.RawCandidate{}
	}

	if err := g.ensureClient(ctx); err != nil {
		g.logger.WithError(err).Warn("Failed to create Gemini client")
		return []models.RawCandidate{}
	}

	text := req.Text
	if len(text) > g.cfg.AI.MaxTextChars {
		text = text[:g.cfg.AI.MaxTextChars]
	}

	isImage := strings.HasPrefix(req.MIMEType, "image/")
	prompt := BuildPrompt(text, isImage, req.MIMEType == "application/pdf", g.categoryNames)

	parts := []genai.Part{genai.Text(prompt)}
	if isImage {
		parts = append(parts, genai.Blob{
			MIMEType: req.MIMEType,
			Data:     req.Content,
		})
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		g.logger.WithError(err).WithField(logging.FieldModel, g.cfg.AI.Model).Warn("Gemini extraction failed")
		return []models.RawCandidate{}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		g.logger.Warn("Empty response from Gemini API")
		return []models.RawCandidate{}
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			responseText.WriteString(string(textPart))
		}
	}

	candidates, ok := ParseJSONArray(responseText.String())
	if !ok {
		g.logger.WithField(logging.FieldModel, g.cfg.AI.Model).Warn("Gemini returned no parseable JSON array")
		return []models.RawCandidate{}
	}

	g.logger.WithFields(
		logging.Field{Key: logging.FieldModel, Value: g.cfg.AI.Model},
		logging.Field{Key: logging.FieldCount, Value: len(candidates)},
	).Debug("Gemini extraction produced candidates")

	return candidates
}

// ensureClient ensures the Gemini client is initialized.
func (g *GeminiExtractor) ensureClient(ctx context.Context) error {
	if g.client != nil {
		return nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.cfg.AI.APIKey))
	if err != nil {
		return err
	}

	g.client = client
	g.model = client.GenerativeModel(g.cfg.AI.Model)
	return nil
}

// Close releases the underlying genai client, if one was created.
func (g *GeminiExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
