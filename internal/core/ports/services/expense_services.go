package services

import (
	"context"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	"github.com/sgaviria/finanzapp/internal/dto"
)

// ExpenseListFilter narrows GET /expenses. Zero values mean no filtering.
type ExpenseListFilter struct {
	DebtID string
	From   string // YYYY-MM-DD
	To     string // YYYY-MM-DD
}

// ExpenseSvcFacade exposes expense CRUD for a tenant.
type ExpenseSvcFacade interface {
	ListExpenses(ctx context.Context, userID string, filter ExpenseListFilter) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}
