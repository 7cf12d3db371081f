package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/core/domain"
)

// DebtReader defines read operations over the Debts sheet.
type DebtReader interface {
	// ListDebts returns every debt row in sheet order.
	ListDebts(ctx context.Context) ([]domain.Debt, error)

	// FindDebtByID returns the debt with the given id, or apperrors.ErrNotFound.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
}

// DebtWriter defines write operations over the Debts sheet.
type DebtWriter interface {
	AppendDebt(ctx context.Context, debt domain.Debt) error
	UpdateDebt(ctx context.Context, debt domain.Debt) error
	DeleteDebt(ctx context.Context, debtID string) error

	// UpdateDebtBalance rewrites only the running-balance cell of a debt row.
	UpdateDebtBalance(ctx context.Context, debtID string, balance decimal.Decimal) error
}

// DebtRepositoryFacade combines all debt repository interfaces.
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
