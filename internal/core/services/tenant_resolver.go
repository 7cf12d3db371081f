package services

import (
	"context"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
)

// tenantResolver resolves a userID to the repositories backed by that
// tenant's spreadsheet. Embedded by every service that operates on tenant
// data.
type tenantResolver struct {
	users   portsrepo.UserRepositoryFacade
	tenants portsrepo.TenantRepositoryFactory
}

func (r tenantResolver) reposFor(ctx context.Context, userID string) (*portsrepo.TenantRepos, *domain.User, error) {
	user, err := r.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user.SpreadsheetID == "" {
		return nil, nil, apperrors.NewBadRequestError("No spreadsheet linked for this user")
	}
	repos, err := r.tenants.ForUser(ctx, *user)
	if err != nil {
		return nil, nil, err
	}
	return repos, user, nil
}
