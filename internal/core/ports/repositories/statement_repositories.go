package repositories

import (
	"context"
	"time"

	"github.com/sgaviria/finanzapp/internal/core/domain"
)

// RowRef identifies a concrete sheet row so a recompute can overwrite a
// statement in place instead of appending a duplicate.
type RowRef int64

// StatementReader defines read operations over the CreditHistory sheet.
type StatementReader interface {
	// ListStatements returns all statements for a debt ordered by StatementDate.
	ListStatements(ctx context.Context, debtID string) ([]domain.Statement, error)

	// FindByDebtAndDate returns the statement keyed by (debtID, statementDate)
	// together with its row reference, or apperrors.ErrNotFound.
	FindByDebtAndDate(ctx context.Context, debtID string, statementDate time.Time) (*domain.Statement, RowRef, error)

	// FindLatestBefore returns the most recent statement with
	// StatementDate < before, or apperrors.ErrNotFound when no prior cycle exists.
	FindLatestBefore(ctx context.Context, debtID string, before time.Time) (*domain.Statement, error)
}

// StatementWriter defines write operations over the CreditHistory sheet.
type StatementWriter interface {
	AppendStatement(ctx context.Context, statement domain.Statement) error
	UpdateStatementAt(ctx context.Context, row RowRef, statement domain.Statement) error
}

// StatementRepositoryFacade combines all statement repository interfaces.
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
