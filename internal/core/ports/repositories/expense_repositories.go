package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/core/domain"
)

// ExpenseReader defines read operations over the Expenses sheet.
type ExpenseReader interface {
	// ListExpenses returns every expense row in sheet order.
	ListExpenses(ctx context.Context) ([]domain.Expense, error)

	// ListExpensesByDebt returns the expenses for a debt with date in
	// [from, to] inclusive, in chronological order.
	ListExpensesByDebt(ctx context.Context, debtID string, from, to time.Time) ([]domain.Expense, error)

	// SumPaymentsForDebt totals payment rows for a debt with date in
	// [from, to] inclusive.
	SumPaymentsForDebt(ctx context.Context, debtID string, from, to time.Time) (decimal.Decimal, error)
}

// ExpenseWriter defines write operations over the Expenses sheet.
type ExpenseWriter interface {
	AppendExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
