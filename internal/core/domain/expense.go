package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a monetary movement against a debt.
type EntryType string

const (
	EntryCharge  EntryType = "charge"
	EntryPayment EntryType = "payment"
)

// Expense is a dated monetary movement, optionally tied to a debt and a
// category. Date carries no time component (midnight UTC). Only rows with
// amount > 0 and a recognized entry type count toward accrual.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (UUID)
	DebtID      string          `json:"debtID"`
	CategoryID  string          `json:"categoryID"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	EntryType   EntryType       `json:"entryType"`
	Description string          `json:"description"`
	AuditFields
}

// CountsForAccrual reports whether the accrual engine considers this row.
func (e Expense) CountsForAccrual() bool {
	if !e.Amount.IsPositive() {
		return false
	}
	return e.EntryType == EntryCharge || e.EntryType == EntryPayment
}
