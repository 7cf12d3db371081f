package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	"github.com/sgaviria/finanzapp/internal/utils"
)

// CreateDebtRequest is the payload for POST /debts.
type CreateDebtRequest struct {
	Name                string          `json:"name" binding:"required"`
	Issuer              string          `json:"issuer"`
	CreditLimit         decimal.Decimal `json:"creditLimit"`
	Balance             decimal.Decimal `json:"balance"`
	DueDay              int             `json:"dueDay" binding:"omitempty,min=1,max=31"`
	CutOffDay           int             `json:"cutOffDay" binding:"omitempty,min=1,max=31"`
	AnnualEffectiveRate decimal.Decimal `json:"annualEffectiveRate"`
}

// UpdateDebtRequest is the payload for PUT /debts/:id. Nil fields are left
// untouched.
type UpdateDebtRequest struct {
	Name                *string          `json:"name,omitempty"`
	Issuer              *string          `json:"issuer,omitempty"`
	CreditLimit         *decimal.Decimal `json:"creditLimit,omitempty"`
	Balance             *decimal.Decimal `json:"balance,omitempty"`
	DueDay              *int             `json:"dueDay,omitempty" binding:"omitempty,min=1,max=31"`
	CutOffDay           *int             `json:"cutOffDay,omitempty" binding:"omitempty,min=1,max=31"`
	Active              *bool            `json:"active,omitempty"`
	AnnualEffectiveRate *decimal.Decimal `json:"annualEffectiveRate,omitempty"`
}

// DebtResponse is the API representation of a debt. Currency fields are fixed
// two-decimal strings.
type DebtResponse struct {
	DebtID              string `json:"debtID"`
	Name                string `json:"name"`
	Issuer              string `json:"issuer"`
	CreditLimit         string `json:"creditLimit"`
	Balance             string `json:"balance"`
	DueDay              int    `json:"dueDay,omitempty"`
	CutOffDay           int    `json:"cutOffDay,omitempty"`
	Active              bool   `json:"active"`
	AnnualEffectiveRate string `json:"annualEffectiveRate"`
}

// ToDebtResponse maps a domain debt to its API shape.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:              d.DebtID,
		Name:                d.Name,
		Issuer:              d.Issuer,
		CreditLimit:         utils.FormatMoney(d.CreditLimit),
		Balance:             utils.FormatMoney(d.Balance),
		DueDay:              d.DueDay,
		CutOffDay:           d.CutOffDay,
		Active:              d.Active,
		AnnualEffectiveRate: utils.FormatRate(d.AnnualEffectiveRate),
	}
}

// ToDebtResponses maps a slice of domain debts.
func ToDebtResponses(debts []domain.Debt) []DebtResponse {
	out := make([]DebtResponse, 0, len(debts))
	for i := range debts {
		out = append(out, ToDebtResponse(&debts[i]))
	}
	return out
}

// DebtSummaryResponse carries per-debt status for the summary endpoints.
type DebtSummaryResponse struct {
	DebtID         string             `json:"debtID"`
	Name           string             `json:"name"`
	Balance        string             `json:"balance"`
	CreditLimit    string             `json:"creditLimit"`
	Utilization    string             `json:"utilization"` // balance / creditLimit, unit fraction
	Available      string             `json:"available"`
	NextCutOffDate string             `json:"nextCutOffDate,omitempty"`
	NextDueDate    string             `json:"nextDueDate,omitempty"`
	LastStatement  *StatementResponse `json:"lastStatement,omitempty"`
}

// InstallmentProjection is one projected future statement for the
// installments endpoint, assuming no new activity on the debt.
type InstallmentProjection struct {
	Period           string `json:"period"` // YYYY-MM
	StatementDate    string `json:"statementDate"`
	OpeningBalance   string `json:"openingBalance"`
	Interest         string `json:"interest"`
	ProjectedBalance string `json:"projectedBalance"`
}
