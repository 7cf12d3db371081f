package services

// ServiceContainer holds all service facades, wired once by the application
// root and passed to handlers and the scheduler. No package-level singletons.
type ServiceContainer struct {
	Debt        DebtSvcFacade
	Accrual     AccrualSvcFacade
	Expense     ExpenseSvcFacade
	Category    CategorySvcFacade
	User        UserSvcFacade
	TokenSvc    TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Batch       BatchSvcFacade
}
