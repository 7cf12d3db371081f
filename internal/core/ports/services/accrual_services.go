package services

import (
	"context"

	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	"github.com/sgaviria/finanzapp/internal/dto"
)

// AccrualSvcFacade runs the billing-cycle accrual for a debt: resolve dates,
// enforce idempotency, compute interest, persist the statement and update the
// debt's running balance.
type AccrualSvcFacade interface {
	// Accrue resolves the tenant from userID and runs the full accrual.
	Accrue(ctx context.Context, userID, debtID string, req dto.AccrueRequest) (*dto.AccrualResult, error)

	// AccrueForTenant runs the full accrual against already-built tenant
	// repositories. The batch runner uses this entry point.
	AccrueForTenant(ctx context.Context, repos *portsrepo.TenantRepos, debtID string, req dto.AccrueRequest) (*dto.AccrualResult, error)

	// Preview computes a statement without persisting anything, returning
	// itemized charge and payment breakdowns for the period.
	Preview(ctx context.Context, userID, debtID string, req dto.AccrueRequest) (*dto.StatementPreview, error)
}
