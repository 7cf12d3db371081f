package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the persisted ledger entry for one billing cycle of one debt.
// At most one record exists per (DebtID, StatementDate); recompute overwrites
// the existing row instead of appending.
type Statement struct {
	DebtID        string    `json:"debtID"`
	StatementDate time.Time `json:"statementDate"` // cutoff date closing the cycle
	DueDate       time.Time `json:"dueDate"`

	PreviousBalance decimal.Decimal `json:"previousBalance"`
	Charges         decimal.Decimal `json:"charges"`
	Interests       decimal.Decimal `json:"interests"` // accrued + carried-over
	Payments        decimal.Decimal `json:"payments"`

	// StatementBalance = max(0, PreviousBalance + Charges + Interests - Payments).
	StatementBalance decimal.Decimal `json:"statementBalance"`

	// BonifiableInterest is grace-period interest, informational only. It is
	// never part of StatementBalance but is included in InstallmentBalance.
	BonifiableInterest decimal.Decimal `json:"bonifiableInterest"`
	InstallmentBalance decimal.Decimal `json:"installmentBalance"`

	AnnualEffectiveRate decimal.Decimal `json:"annualEffectiveRate"` // unit fraction used
	PeriodDays          int             `json:"periodDays"`

	// PaymentMade holds payments attributed to this statement's due window,
	// filled in when the following cycle is computed.
	PaymentMade decimal.Decimal `json:"paymentMade"`
}

// Key returns the idempotency key for this statement.
func (s Statement) Key() string {
	return fmt.Sprintf("%s|%s", s.DebtID, s.StatementDate.Format("2006-01-02"))
}

// IsPaidInFull reports whether paymentsMade cover the statement balance.
func (s Statement) IsPaidInFull(paymentsMade decimal.Decimal) bool {
	return paymentsMade.GreaterThanOrEqual(s.StatementBalance)
}
