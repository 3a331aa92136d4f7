// Package heuristic provides a deterministic, regex-based fallback extractor
// that scans plain receipt or statement text for item/price pairs. It is the
// strategy used when the AI adapter is disabled, fails, or returns nothing:
// pure, no network access, identical output for identical input.
package heuristic

import (
	"regexp"
	"strings"

	"fjacquet/receipt-parser/internal/currencyutils"
	"fjacquet/receipt-parser/internal/dateutils"
	"fjacquet/receipt-parser/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ignorePattern matches payment-method and bookkeeping noise that never
	// represents a purchasable line item.
	ignorePattern = regexp.MustCompile(`(?i)\b(tax|change|visa|mastercard|debit|cash|subtotal)\b`)

	// totalPattern marks lines that carry the receipt's total.
	totalPattern = regexp.MustCompile(`(?i)\b(grand total|amount due|total)\b`)

	// creditPattern marks an item as incoming money rather than spending.
	creditPattern = regexp.MustCompile(`(?i)\b(refund|credit|return)\b`)

	// itemStrictPattern: label, then at least two separating spaces or dots,
	// then a trailing price. The common "Coffee Shop .... $4.50" shape.
	itemStrictPattern = regexp.MustCompile(`^(.+?)[\s.]{2,}(\(?\s*-?\s*[$€£]?\s*\d[\d,']*(?:\.\d+)?\s*\)?)$`)

	// itemLoosePattern: anything followed by a trailing price, used when the
	// strict shape does not match.
	itemLoosePattern = regexp.MustCompile(`^(.+?)\s(\(?\s*-?\s*[$€£]?\s*\d[\d,']*(?:\.\d+)?\s*\)?)$`)

	// amountTokenPattern finds every numeric token on a total-hint line.
	amountTokenPattern = regexp.MustCompile(`\(?-?\s*[$€£]?\s*\d[\d,']*(?:\.\d+)?\)?`)

	// numericLabelPattern rejects labels that are only digits and punctuation.
	numericLabelPattern = regexp.MustCompile(`^[\d\s.,'-]*$`)
)

// Extract scans plain text line by line and builds transaction candidates
// from item/price pairs. Output policy:
//   - any line items found: all of them, sign-normalized (expense negative,
//     credit positive) and rounded to 2 decimals, exact raw+amount
//     duplicates collapsed;
//   - no items but a probable total: exactly one synthetic "TOTAL" expense;
//   - neither: an empty slice.
func Extract(text string) []models.RawCandidate {
	candidates := []models.RawCandidate{}
	seen := make(map[string]bool)

	globalDate, hasGlobalDate := dateutils.FindFirstDate(text)

	var probableTotal decimal.Decimal
	hasTotal := false

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		isTotalHint := totalPattern.MatchString(line)

		if isTotalHint {
			// Statements often repeat the total at higher precision or in a
			// summary row; the largest plausible figure on a total line is
			// most likely the final total rather than a subtotal. Running
			// max, not sum.
			for _, token := range amountTokenPattern.FindAllString(line, -1) {
				amount, ok := currencyutils.ParseAmount(token)
				if !ok {
					continue
				}
				if !hasTotal || amount.GreaterThan(probableTotal) {
					probableTotal = amount
					hasTotal = true
				}
			}
			continue
		}

		if ignorePattern.MatchString(line) {
			continue
		}

		label, amountToken, ok := matchItem(line)
		if !ok {
			continue
		}

		amount, ok := currencyutils.ParseAmount(amountToken)
		if !ok {
			continue
		}

		label = strings.TrimRight(label, ". ")
		label = strings.TrimSpace(label)
		if label == "" || numericLabelPattern.MatchString(label) {
			continue
		}

		isCredit := creditPattern.MatchString(label) || creditPattern.MatchString(line)
		signed := currencyutils.Round2(currencyutils.SignForType(amount, !isCredit))

		key := strings.ToLower(label) + "|" + signed.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		itemType := models.TypeExpense
		if isCredit {
			itemType = models.TypeCredit
		}

		var date interface{}
		if lineDate, found := dateutils.FindFirstDate(line); found {
			date = lineDate
		} else if hasGlobalDate {
			date = globalDate
		}

		candidates = append(candidates, models.RawCandidate{
			Amount: signed.InexactFloat64(),
			Type:   string(itemType),
			Raw:    label,
			Date:   date,
		})
	}

	if len(candidates) == 0 && hasTotal {
		total := currencyutils.Round2(probableTotal.Abs().Neg())
		var date interface{}
		if hasGlobalDate {
			date = globalDate
		}
		candidates = append(candidates, models.RawCandidate{
			Amount: total.InexactFloat64(),
			Type:   string(models.TypeExpense),
			Raw:    "TOTAL",
			Date:   date,
		})
	}

	return candidates
}

// matchItem tries the strict item shape first, then the loose one.
func matchItem(line string) (label, amountToken string, ok bool) {
	if m := itemStrictPattern.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}
	if m := itemLoosePattern.FindStringSubmatch(line); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}
