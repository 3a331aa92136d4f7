package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
		ok       bool
	}{
		{"Plain decimal", "45.00", "45", true},
		{"Dollar sign with thousands separator", "$1,234.56", "1234.56", true},
		{"Currency code prefix", "CHF 45.00", "45", true},
		{"Swiss apostrophe separator", "1'234.50", "1234.5", true},
		{"Parentheses stripped without sign", "(45.00)", "45", true},
		{"Explicit negative kept", "-12.30", "-12.3", true},
		{"Euro symbol", "€9.99", "9.99", true},
		{"Letters only", "total", "", false},
		{"Empty string", "", "", false},
		{"Lone minus", "-", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseAmount(tc.token)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				expected, err := decimal.NewFromString(tc.expected)
				assert.NoError(t, err)
				assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Half rounds away from zero", "2.005", "2.01"},
		{"Negative half rounds away from zero", "-2.005", "-2.01"},
		{"Already two places", "45.67", "45.67"},
		{"Truncation below half", "1.004", "1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, _ := decimal.NewFromString(tc.input)
			expected, _ := decimal.NewFromString(tc.expected)
			assert.True(t, expected.Equal(Round2(in)))
		})
	}
}

func TestRound2Idempotent(t *testing.T) {
	in, _ := decimal.NewFromString("19.995")
	once := Round2(in)
	twice := Round2(once)
	assert.True(t, once.Equal(twice))
}

func TestSignForType(t *testing.T) {
	amount := decimal.NewFromFloat(45.0)

	expense := SignForType(amount, true)
	assert.True(t, expense.IsNegative())

	credit := SignForType(amount.Neg(), false)
	assert.True(t, credit.IsPositive())

	// source sign is discarded entirely
	assert.True(t, SignForType(amount.Neg(), true).Equal(expense))
}
