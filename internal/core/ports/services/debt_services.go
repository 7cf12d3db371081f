package services

import (
	"context"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	"github.com/sgaviria/finanzapp/internal/dto"
)

// DebtSvcFacade exposes debt CRUD plus the read-only summary and projection
// operations. Every method resolves the tenant's spreadsheet from userID.
type DebtSvcFacade interface {
	ListDebts(ctx context.Context, userID string) ([]domain.Debt, error)
	CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error)
	UpdateDebt(ctx context.Context, userID, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, userID, debtID string) error

	GetDebtSummary(ctx context.Context, userID, debtID string) (*dto.DebtSummaryResponse, error)
	ListDebtSummaries(ctx context.Context, userID string) ([]dto.DebtSummaryResponse, error)

	// ListStatements returns the persisted statement ledger of a debt in
	// chronological order.
	ListStatements(ctx context.Context, userID, debtID string) ([]dto.StatementResponse, error)

	// ProjectInstallments projects future statements for months cycles starting
	// at the start period (YYYY-MM, defaulting to the current month), assuming
	// no new activity.
	ProjectInstallments(ctx context.Context, userID, debtID string, months int, start string) ([]dto.InstallmentProjection, error)
}
