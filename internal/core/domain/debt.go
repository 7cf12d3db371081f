package domain

import (
	"github.com/shopspring/decimal"
)

// Debt represents a line of credit tracked by the user.
// Balance is the running balance and is the only field the accrual engine
// mutates: after every statement it is set to the post-statement balance
// including out-of-cycle movements up to "now".
type Debt struct {
	DebtID      string          `json:"debtID"` // Primary Key (UUID), unique per tenant
	Name        string          `json:"name"`
	Issuer      string          `json:"issuer"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	Balance     decimal.Decimal `json:"balance"`

	// DueDay is the day-of-month payment is due (1-31). Zero means not configured.
	DueDay int `json:"dueDay"`
	// CutOffDay is the day-of-month the statement closes (1-31). Zero means not
	// configured: statements fall on the last day of the month.
	CutOffDay int `json:"cutOffDay"`

	Active bool `json:"active"`

	// AnnualEffectiveRate may be stored either as a percentage (>1, e.g. 36)
	// or as a unit fraction (<=1, e.g. 0.36). Normalize before use.
	AnnualEffectiveRate decimal.Decimal `json:"annualEffectiveRate"`

	AuditFields
}

// HasCutOffDay reports whether a statement cutoff day is configured.
func (d Debt) HasCutOffDay() bool {
	return d.CutOffDay > 0
}

// HasDueDay reports whether a payment due day is configured.
func (d Debt) HasDueDay() bool {
	return d.DueDay > 0
}
