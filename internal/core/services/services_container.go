package services

import (
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The container is built once by the application
// root and passed by reference to handlers and the scheduler.
func NewServiceContainer(cfg *config.Config, users portsrepo.UserRepositoryFacade, tenants portsrepo.TenantRepositoryFactory) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(users)
	container.TokenSvc = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	container.Debt = NewDebtService(users, tenants)
	container.Expense = NewExpenseService(users, tenants)
	container.Category = NewCategoryService(users, tenants)
	container.Accrual = NewAccrualService(users, tenants)

	container.Batch = NewBatchService(users, tenants, container.GoogleOAuth, container.Accrual)

	return container
}
