package repositories

import (
	"context"

	"github.com/sgaviria/finanzapp/internal/core/domain"
)

// TenantRepos bundles the per-tenant repositories, all backed by the tenant's
// own spreadsheet.
type TenantRepos struct {
	Debts      DebtRepositoryFacade
	Expenses   ExpenseRepositoryFacade
	Statements StatementRepositoryFacade
	Categories CategoryRepositoryFacade
}

// TenantRepositoryFactory builds the per-tenant repositories for a user,
// authenticating against the data store with the user's stored credentials.
// Implementations validate the spreadsheet schema on first use and fail fast
// with apperrors.ErrSchemaMismatch.
type TenantRepositoryFactory interface {
	ForUser(ctx context.Context, user domain.User) (*TenantRepos, error)
}
