package dto

import (
	"time"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	"github.com/sgaviria/finanzapp/internal/utils"
)

// AccrueRequest carries the accrual parameters taken from the query string.
// Period (YYYY-MM) and Date (YYYY-MM-DD) are mutually exclusive; when both
// are empty the statement date is derived from today.
type AccrueRequest struct {
	Period    string `form:"period"`
	Date      string `form:"date"`
	Recompute bool   `form:"recompute"`
}

// StatementResponse is the API representation of a persisted statement.
type StatementResponse struct {
	DebtID              string `json:"debtID"`
	StatementDate       string `json:"statementDate"`
	DueDate             string `json:"dueDate"`
	PreviousBalance     string `json:"previousBalance"`
	Charges             string `json:"charges"`
	Interests           string `json:"interests"`
	Payments            string `json:"payments"`
	StatementBalance    string `json:"statementBalance"`
	BonifiableInterest  string `json:"bonifiableInterest"`
	InstallmentBalance  string `json:"installmentBalance"`
	AnnualEffectiveRate string `json:"annualEffectiveRate"`
	PeriodDays          int    `json:"periodDays"`
	PaymentMade         string `json:"paymentMade"`
}

// ToStatementResponse maps a domain statement to its API shape.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	return StatementResponse{
		DebtID:              s.DebtID,
		StatementDate:       s.StatementDate.Format(time.DateOnly),
		DueDate:             s.DueDate.Format(time.DateOnly),
		PreviousBalance:     utils.FormatMoney(s.PreviousBalance),
		Charges:             utils.FormatMoney(s.Charges),
		Interests:           utils.FormatMoney(s.Interests),
		Payments:            utils.FormatMoney(s.Payments),
		StatementBalance:    utils.FormatMoney(s.StatementBalance),
		BonifiableInterest:  utils.FormatMoney(s.BonifiableInterest),
		InstallmentBalance:  utils.FormatMoney(s.InstallmentBalance),
		AnnualEffectiveRate: utils.FormatRate(s.AnnualEffectiveRate),
		PeriodDays:          s.PeriodDays,
		PaymentMade:         utils.FormatMoney(s.PaymentMade),
	}
}

// AccrualResult is the outcome of POST /debts/:id/accrue. When Skipped is
// true the statement for the key already existed and nothing was written.
type AccrualResult struct {
	Skipped       bool               `json:"skipped"`
	Reason        string             `json:"reason,omitempty"`
	Key           string             `json:"key,omitempty"` // "{debtID}|{statementDate}"
	StatementDate string             `json:"statementDate,omitempty"`
	Statement     *StatementResponse `json:"statement,omitempty"`
	NewBalance    string             `json:"newBalance,omitempty"`
}

// PeriodItem is one itemized movement inside a previewed cycle.
type PeriodItem struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// StatementPreview is the outcome of GET /debts/:id/statement-preview:
// the computed statement plus itemized breakdowns, nothing persisted.
type StatementPreview struct {
	Skipped       bool               `json:"skipped"`
	Reason        string             `json:"reason,omitempty"`
	Key           string             `json:"key,omitempty"`
	StatementDate string             `json:"statementDate,omitempty"`
	Statement     *StatementResponse `json:"statement,omitempty"`
	ChargeItems   []PeriodItem       `json:"chargeItems,omitempty"`
	PaymentItems  []PeriodItem       `json:"paymentItems,omitempty"`
}

// BatchSummary aggregates one nightly accrual run across all tenants.
type BatchSummary struct {
	UsersTotal   int `json:"usersTotal"`
	UsersSkipped int `json:"usersSkipped"`
	Processed    int `json:"processed"`
	Skipped      int `json:"skipped"`
	Errored      int `json:"errored"`
}
