// Package normalizer converts loosely-typed transaction candidates into
// canonical Transaction records, enforcing every schema invariant before a
// record becomes eligible for persistence.
//
// Normalize is total: it filters invalid candidates instead of failing, so
// one malformed array element from the AI never aborts the rest.
package normalizer

import (
	"fmt"
	"math"

	"fjacquet/receipt-parser/internal/categorizer"
	"fjacquet/receipt-parser/internal/currencyutils"
	"fjacquet/receipt-parser/internal/dateutils"
	"fjacquet/receipt-parser/internal/logging"
	"fjacquet/receipt-parser/internal/models"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength bounds the sanitized description.
const MaxDescriptionLength = 160

// PlaceholderDescription stands in when sanitization leaves nothing usable.
const PlaceholderDescription = "Transaction"

// Normalizer owns the candidate-to-Transaction conversion. It is stateless
// apart from the injected categorizer and safe for concurrent use.
type Normalizer struct {
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// New creates a Normalizer resolving categories against the given categorizer.
func New(cat *categorizer.Categorizer, logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Normalizer{
		categorizer: cat,
		logger:      logger,
	}
}

// Normalize sanitizes raw candidates into canonical Transactions. Candidates
// whose amount does not coerce to a finite number are dropped; everything
// else is repaired rather than rejected. Output order matches input order
// minus dropped entries.
//
// Zero-amount candidates are kept: the pipeline does not enforce amount != 0,
// callers that care reject them separately.
func (n *Normalizer) Normalize(candidates []models.RawCandidate) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(candidates))

	for _, candidate := range candidates {
		amount, ok := coerceAmount(candidate.Amount)
		if !ok {
			n.logger.WithField(logging.FieldReason, "unparseable amount").Debug("Dropping candidate")
			continue
		}

		// Only the exact string "credit" maps to credit; anything else,
		// including absent or misspelled values, is an expense. Defaulting
		// to expense is a deliberate conservative bias: better to overstate
		// spending than to hide it.
		txType := models.TypeExpense
		if s, isString := candidate.Type.(string); isString && s == string(models.TypeCredit) {
			txType = models.TypeCredit
		}

		// The type is authoritative for the sign; whatever sign the source
		// supplied is discarded.
		signed := currencyutils.Round2(currencyutils.SignForType(amount, txType == models.TypeExpense))

		rawText := coerceString(candidate.Raw)
		description := sanitizeDescription(rawText)

		date := resolveDate(candidate.Date, rawText)

		suppliedCategory := coerceString(candidate.Category)
		category := n.categorizer.Resolve(suppliedCategory, description)

		transactions = append(transactions, models.Transaction{
			Amount:      signed,
			Type:        txType,
			Category:    category,
			Description: description,
			Date:        date,
		})
	}

	return transactions
}

// coerceAmount accepts the numeric shapes JSON decoding and the heuristic
// extractor produce. Strings go through the amount parser so "$1,234.56"
// from a sloppy model response still survives.
func coerceAmount(v interface{}) (decimal.Decimal, bool) {
	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(value), true
	case int:
		return decimal.NewFromInt(int64(value)), true
	case int64:
		return decimal.NewFromInt(value), true
	case string:
		return currencyutils.ParseAmount(value)
	default:
		return decimal.Zero, false
	}
}

// coerceString renders a loosely-typed field as text, empty when absent.
func coerceString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprintf("%v", value)
	}
}

// sanitizeDescription strips residual date tokens from the front, substitutes
// a placeholder for empty results, and bounds the length. The cap counts
// runes, not bytes, so a multi-byte character is never split.
func sanitizeDescription(raw string) string {
	description := dateutils.StripLeadingDate(raw)
	if description == "" {
		description = PlaceholderDescription
	}
	if runes := []rune(description); len(runes) > MaxDescriptionLength {
		description = string(runes[:MaxDescriptionLength])
	}
	return description
}

// resolveDate keeps an exact ISO date, otherwise tries to recover one from
// the candidate's own text. A date is never fabricated: no token, no date.
func resolveDate(v interface{}, rawText string) *string {
	if s, isString := v.(string); isString && dateutils.IsISODate(s) {
		date := s
		return &date
	}
	if recovered, found := dateutils.FindFirstDate(rawText); found {
		return &recovered
	}
	return nil
}
