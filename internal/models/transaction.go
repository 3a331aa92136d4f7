// Package models provides the data structures used throughout the application.
package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money leaving the account from money entering it.
type TransactionType string

const (
	// TypeExpense marks money spent. Normalized expense amounts are negative.
	TypeExpense TransactionType = "expense"
	// TypeCredit marks money received (refund, salary, deposit). Normalized
	// credit amounts are positive.
	TypeCredit TransactionType = "credit"
)

// Transaction is the canonical, persistable record produced by the
// normalization pipeline. Every invariant has already been enforced:
// the amount is signed according to Type and rounded to 2 decimal places,
// Category is a member of the configured category set, Description is
// sanitized and bounded, and Date is either a full ISO date or nil.
type Transaction struct {
	Amount      decimal.Decimal `csv:"Amount" json:"amount"`
	Type        TransactionType `csv:"Type" json:"type"`
	Category    string          `csv:"Category" json:"category"`
	Description string          `csv:"Description" json:"raw"`
	Date        *string         `csv:"Date" json:"date"`
}

// IsCredit returns true if the transaction is a credit (incoming money).
func (t *Transaction) IsCredit() bool {
	return t.Type == TypeCredit
}

// IsExpense returns true if the transaction is an expense (outgoing money).
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// GetAmountAsFloat returns the Amount as a float64.
// Use direct decimal operations instead for financial calculations.
func (t *Transaction) GetAmountAsFloat() float64 {
	f, _ := t.Amount.Float64()
	return f
}

// DateOrEmpty returns the ISO date or "" when the date is unknown.
func (t *Transaction) DateOrEmpty() string {
	if t.Date == nil {
		return ""
	}
	return *t.Date
}
