package aiextract

import (
	"encoding/json"
	"regexp"
	"strings"

	"fjacquet/receipt-parser/internal/models"
)

var codeFencePattern = regexp.MustCompile("(?i)```json|```")

// ParseJSONArray extracts the first JSON array from the model's free-form
// text response. Code-fence markers are stripped, the slice between the
// first '[' and the last ']' is parsed strictly, and anything else (no
// brackets, invalid JSON, non-array payload) yields ok=false. There is no
// partial or best-effort parse: a malformed response is treated the same as
// no response at all.
func ParseJSONArray(text string) ([]models.RawCandidate, bool) {
	if text == "" {
		return nil, false
	}

	cleaned := strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}

	var candidates []models.RawCandidate
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &candidates); err != nil {
		return nil, false
	}

	return candidates, true
}
