package normalizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/receipt-parser/internal/categorizer"
	"fjacquet/receipt-parser/internal/models"
	"fjacquet/receipt-parser/internal/store"
)

func newTestNormalizer() *Normalizer {
	return New(categorizer.NewCategorizer(store.DefaultCategories(), nil), nil)
}

func TestNormalizeSignInvariant(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		amount   interface{}
		txType   interface{}
		expected string
	}{
		{"Expense forced negative", 45.0, "expense", "-45"},
		{"Expense already negative stays negative", -45.0, "expense", "-45"},
		{"Credit forced positive", -100.0, "credit", "100"},
		{"Credit already positive stays positive", 100.0, "credit", "100"},
		{"Missing type defaults to expense", 12.5, nil, "-12.5"},
		{"Unknown type defaults to expense", 12.5, "CREDIT", "-12.5"},
		{"Misspelled type defaults to expense", 12.5, "refund", "-12.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := n.Normalize([]models.RawCandidate{{Amount: tc.amount, Type: tc.txType, Raw: "Item"}})
			assert.Len(t, out, 1)
			expected, _ := decimal.NewFromString(tc.expected)
			assert.True(t, expected.Equal(out[0].Amount), "expected %s, got %s", expected, out[0].Amount)
		})
	}
}

func TestNormalizeRounding(t *testing.T) {
	n := newTestNormalizer()

	out := n.Normalize([]models.RawCandidate{{Amount: 4.505, Type: "expense", Raw: "Coffee"}})
	assert.Len(t, out, 1)
	assert.Equal(t, "-4.51", out[0].Amount.String())
}

func TestNormalizeAmountCoercion(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name    string
		amount  interface{}
		kept    bool
		encoded string
	}{
		{"Float", 4.5, true, "-4.5"},
		{"Int", 7, true, "-7"},
		{"Numeric string", "45.00", true, "-45"},
		{"Noisy string", "$1,234.56", true, "-1234.56"},
		{"Zero kept", 0.0, true, "0"},
		{"Unparseable string", "lots", false, ""},
		{"Nil dropped", nil, false, ""},
		{"Bool dropped", true, false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := n.Normalize([]models.RawCandidate{{Amount: tc.amount, Type: "expense", Raw: "Item"}})
			if !tc.kept {
				assert.Empty(t, out)
				return
			}
			assert.Len(t, out, 1)
			expected, _ := decimal.NewFromString(tc.encoded)
			assert.True(t, expected.Equal(out[0].Amount), "expected %s, got %s", expected, out[0].Amount)
		})
	}
}

func TestNormalizeDropsOnlyInvalid(t *testing.T) {
	n := newTestNormalizer()

	out := n.Normalize([]models.RawCandidate{
		{Amount: 4.5, Type: "expense", Raw: "Coffee"},
		{Amount: "garbage", Type: "expense", Raw: "Broken"},
		{Amount: 100.0, Type: "credit", Raw: "Refund"},
	})

	assert.Len(t, out, 2)
	assert.Equal(t, "Coffee", out[0].Description)
	assert.Equal(t, "Refund", out[1].Description)
}

func TestNormalizeDescriptionSanitization(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		raw      interface{}
		expected string
	}{
		{"Plain text kept", "Coffee Shop", "Coffee Shop"},
		{"Leading date stripped", "2025-01-15 Coffee Shop", "Coffee Shop"},
		{"Date only becomes placeholder", "2025-01-15", PlaceholderDescription},
		{"Empty becomes placeholder", "", PlaceholderDescription},
		{"Missing becomes placeholder", nil, PlaceholderDescription},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := n.Normalize([]models.RawCandidate{{Amount: 1.0, Type: "expense", Raw: tc.raw}})
			assert.Len(t, out, 1)
			assert.Equal(t, tc.expected, out[0].Description)
		})
	}
}

func TestNormalizeDescriptionTruncated(t *testing.T) {
	n := newTestNormalizer()

	long := ""
	for len(long) < 500 {
		long += "very long description "
	}

	out := n.Normalize([]models.RawCandidate{{Amount: 1.0, Type: "expense", Raw: long}})
	assert.Len(t, out, 1)
	assert.Len(t, out[0].Description, MaxDescriptionLength)
}

func TestNormalizeDescriptionTruncatedOnRuneBoundary(t *testing.T) {
	n := newTestNormalizer()

	// multi-byte character straddling the cap must be dropped whole,
	// never split into invalid bytes
	raw := strings.Repeat("a", MaxDescriptionLength-1) + "é…"

	out := n.Normalize([]models.RawCandidate{{Amount: 1.0, Type: "expense", Raw: raw}})
	assert.Len(t, out, 1)

	description := out[0].Description
	assert.True(t, utf8.ValidString(description))
	assert.Equal(t, MaxDescriptionLength, utf8.RuneCountInString(description))
	assert.Equal(t, strings.Repeat("a", MaxDescriptionLength-1)+"é", description)
}

func TestNormalizeDateResolution(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		date     interface{}
		raw      interface{}
		expected *string
	}{
		{"Exact ISO date kept", "2025-01-15", "Coffee", strPtr("2025-01-15")},
		{"Non ISO date dropped", "15.01.2025", "Coffee", nil},
		{"Date recovered from raw text", nil, "2025-01-15 Coffee", strPtr("2025-01-15")},
		{"No date anywhere stays nil", nil, "Coffee", nil},
		{"Numeric date field ignored", 20250115, "Coffee", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := n.Normalize([]models.RawCandidate{{Amount: 1.0, Type: "expense", Raw: tc.raw, Date: tc.date}})
			assert.Len(t, out, 1)
			if tc.expected == nil {
				assert.Nil(t, out[0].Date)
			} else {
				assert.NotNil(t, out[0].Date)
				assert.Equal(t, *tc.expected, *out[0].Date)
			}
		})
	}
}

func TestNormalizeCategoryResolution(t *testing.T) {
	n := newTestNormalizer()

	out := n.Normalize([]models.RawCandidate{
		{Amount: 4.5, Type: "expense", Raw: "Coffee Shop", Category: "food"},
		{Amount: 4.5, Type: "expense", Raw: "Coffee Shop", Category: "Nonsense"},
		{Amount: 4.5, Type: "expense", Raw: "XYZZY"},
	})

	assert.Len(t, out, 3)
	assert.Equal(t, models.CategoryFood, out[0].Category)
	assert.Equal(t, models.CategoryFood, out[1].Category)
	assert.Equal(t, models.CategoryOther, out[2].Category)

	// every output carries a category from the configured set
	names := map[string]bool{}
	for _, name := range store.DefaultCategories() {
		names[name.Name] = true
	}
	for _, tx := range out {
		assert.True(t, names[tx.Category])
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer()

	first := n.Normalize([]models.RawCandidate{
		{Amount: 4.505, Type: "expense", Raw: "Coffee Shop", Date: "2025-01-15", Category: "Food"},
		{Amount: -100.0, Type: "credit", Raw: "Refund Sweater"},
	})
	require.Len(t, first, 2)

	// feeding normalized output back through changes nothing
	refed := make([]models.RawCandidate, len(first))
	for i, tx := range first {
		var date interface{}
		if tx.Date != nil {
			date = *tx.Date
		}
		refed[i] = models.RawCandidate{
			Amount:   tx.Amount.InexactFloat64(),
			Type:     string(tx.Type),
			Raw:      tx.Description,
			Date:     date,
			Category: tx.Category,
		}
	}

	second := n.Normalize(refed)
	require.Len(t, second, 2)
	for i := range first {
		assert.True(t, first[i].Amount.Equal(second[i].Amount))
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.Equal(t, first[i].Category, second[i].Category)
		assert.Equal(t, first[i].Description, second[i].Description)
		assert.Equal(t, first[i].DateOrEmpty(), second[i].DateOrEmpty())
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := newTestNormalizer()
	assert.Empty(t, n.Normalize(nil))
	assert.Empty(t, n.Normalize([]models.RawCandidate{}))
}

func strPtr(s string) *string {
	return &s
}
