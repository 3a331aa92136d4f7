package models

// RawCandidate is an unvalidated transaction proposal. It is produced either
// by parsing the AI model's JSON output or by the heuristic line-item
// extractor, and exists only for the duration of one extraction call.
//
// Every field is loosely typed on purpose: the AI response is untrusted and
// may carry missing, wrongly typed, or out-of-range values. The normalizer
// owns all validation; nothing here is safe to persist as-is.
type RawCandidate struct {
	Amount   interface{} `json:"amount"`
	Type     interface{} `json:"type"`
	Raw      interface{} `json:"raw"`
	Date     interface{} `json:"date"`
	Category interface{} `json:"category"`
}
