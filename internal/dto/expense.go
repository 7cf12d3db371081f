package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	"github.com/sgaviria/finanzapp/internal/utils"
)

// CreateExpenseRequest is the payload for POST /expenses. Date uses the
// YYYY-MM-DD form; EntryType is charge or payment.
type CreateExpenseRequest struct {
	DebtID      string          `json:"debtID"`
	CategoryID  string          `json:"categoryID"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	EntryType   string          `json:"entryType" binding:"required,oneof=charge payment"`
	Description string          `json:"description"`
}

// UpdateExpenseRequest is the payload for PUT /expenses/:id.
type UpdateExpenseRequest struct {
	DebtID      *string          `json:"debtID,omitempty"`
	CategoryID  *string          `json:"categoryID,omitempty"`
	Date        *string          `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	EntryType   *string          `json:"entryType,omitempty" binding:"omitempty,oneof=charge payment"`
	Description *string          `json:"description,omitempty"`
}

// ExpenseResponse is the API representation of an expense.
type ExpenseResponse struct {
	ExpenseID   string `json:"expenseID"`
	DebtID      string `json:"debtID,omitempty"`
	CategoryID  string `json:"categoryID,omitempty"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	EntryType   string `json:"entryType"`
	Description string `json:"description,omitempty"`
}

// ToExpenseResponse maps a domain expense to its API shape.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		DebtID:      e.DebtID,
		CategoryID:  e.CategoryID,
		Date:        e.Date.Format(time.DateOnly),
		Amount:      utils.FormatMoney(e.Amount),
		EntryType:   string(e.EntryType),
		Description: e.Description,
	}
}

// ToExpenseResponses maps a slice of domain expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, ToExpenseResponse(&expenses[i]))
	}
	return out
}
