package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/utils/dates"
)

// expenseService provides expense CRUD for a tenant.
type expenseService struct {
	tenantResolver
	now func() time.Time
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(users portsrepo.UserRepositoryFacade, tenants portsrepo.TenantRepositoryFactory) portssvc.ExpenseSvcFacade {
	return &expenseService{
		tenantResolver: tenantResolver{users: users, tenants: tenants},
		now:            time.Now,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func parseDateOnly(value, field string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, apperrors.NewBadRequestError(fmt.Sprintf("Invalid %s %q, expected YYYY-MM-DD", field, value))
	}
	return dates.Normalize(parsed), nil
}

// ListExpenses implements portssvc.ExpenseSvcFacade.
func (s *expenseService) ListExpenses(ctx context.Context, userID string, filter portssvc.ExpenseListFilter) ([]domain.Expense, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	from := time.Time{}
	to := dates.Normalize(s.now()).AddDate(100, 0, 0) // effectively unbounded
	if filter.From != "" {
		if from, err = parseDateOnly(filter.From, "from"); err != nil {
			return nil, err
		}
	}
	if filter.To != "" {
		if to, err = parseDateOnly(filter.To, "to"); err != nil {
			return nil, err
		}
	}

	if filter.DebtID != "" {
		return repos.Expenses.ListExpensesByDebt(ctx, filter.DebtID, from, to)
	}

	all, err := repos.Expenses.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Expense, 0, len(all))
	for _, e := range all {
		d := dates.Normalize(e.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// CreateExpense implements portssvc.ExpenseSvcFacade.
func (s *expenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	date, err := parseDateOnly(req.Date, "date")
	if err != nil {
		return nil, err
	}
	if req.DebtID != "" {
		if _, err := repos.Debts.FindDebtByID(ctx, req.DebtID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		DebtID:      req.DebtID,
		CategoryID:  req.CategoryID,
		Date:        date,
		Amount:      req.Amount,
		EntryType:   domain.EntryType(req.EntryType),
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if !expense.Amount.IsPositive() {
		return nil, apperrors.NewBadRequestError("amount must be greater than zero")
	}
	if err := repos.Expenses.AppendExpense(ctx, expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense implements portssvc.ExpenseSvcFacade.
func (s *expenseService) UpdateExpense(ctx context.Context, userID, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := repos.Expenses.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	var expense *domain.Expense
	for i := range all {
		if all[i].ExpenseID == expenseID {
			expense = &all[i]
			break
		}
	}
	if expense == nil {
		return nil, apperrors.NewNotFoundError("Expense not found")
	}

	if req.DebtID != nil {
		expense.DebtID = *req.DebtID
	}
	if req.CategoryID != nil {
		expense.CategoryID = *req.CategoryID
	}
	if req.Date != nil {
		date, err := parseDateOnly(*req.Date, "date")
		if err != nil {
			return nil, err
		}
		expense.Date = date
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewBadRequestError("amount must be greater than zero")
		}
		expense.Amount = *req.Amount
	}
	if req.EntryType != nil {
		expense.EntryType = domain.EntryType(*req.EntryType)
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	expense.LastUpdatedAt = s.now()
	expense.LastUpdatedBy = userID

	if err := repos.Expenses.UpdateExpense(ctx, *expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense implements portssvc.ExpenseSvcFacade.
func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return err
	}
	return repos.Expenses.DeleteExpense(ctx, expenseID)
}
