package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/utils"
	"github.com/sgaviria/finanzapp/internal/utils/dates"
)

// categoryService provides category CRUD and the monthly spend report.
type categoryService struct {
	tenantResolver
	now func() time.Time
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(users portsrepo.UserRepositoryFacade, tenants portsrepo.TenantRepositoryFactory) portssvc.CategorySvcFacade {
	return &categoryService{
		tenantResolver: tenantResolver{users: users, tenants: tenants},
		now:            time.Now,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// ListCategories implements portssvc.CategorySvcFacade.
func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return repos.Categories.ListCategories(ctx)
}

// CreateCategory implements portssvc.CategorySvcFacade.
func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	category := domain.Category{
		CategoryID:    uuid.NewString(),
		Name:          req.Name,
		MonthlyBudget: req.MonthlyBudget,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := repos.Categories.AppendCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory implements portssvc.CategorySvcFacade.
func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	category, err := repos.Categories.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.MonthlyBudget != nil {
		category.MonthlyBudget = *req.MonthlyBudget
	}
	category.LastUpdatedAt = s.now()
	category.LastUpdatedBy = userID

	if err := repos.Categories.UpdateCategory(ctx, *category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory implements portssvc.CategorySvcFacade.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := repos.Categories.FindCategoryByID(ctx, categoryID); err != nil {
		return err
	}
	return repos.Categories.DeleteCategory(ctx, categoryID)
}

// MonthlySpend implements portssvc.CategorySvcFacade: charges per category
// within the YYYY-MM period, compared against each category's budget.
func (s *categoryService) MonthlySpend(ctx context.Context, userID, period string) ([]dto.CategorySpendResponse, error) {
	parsed, err := time.Parse("2006-01", period)
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Invalid period %q, expected YYYY-MM", period))
	}
	from := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := dates.LastDayOfMonth(parsed.Year(), parsed.Month())

	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := repos.Categories.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := repos.Expenses.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	spent := make(map[string]decimal.Decimal, len(categories))
	for _, e := range expenses {
		if e.EntryType != domain.EntryCharge || e.CategoryID == "" {
			continue
		}
		d := dates.Normalize(e.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		spent[e.CategoryID] = spent[e.CategoryID].Add(e.Amount)
	}

	out := make([]dto.CategorySpendResponse, 0, len(categories))
	for _, c := range categories {
		row := dto.CategorySpendResponse{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Spent:      utils.FormatMoney(spent[c.CategoryID]),
		}
		if c.MonthlyBudget.IsPositive() {
			row.MonthlyBudget = utils.FormatMoney(c.MonthlyBudget)
			row.Remaining = utils.FormatMoney(c.MonthlyBudget.Sub(spent[c.CategoryID]))
		}
		out = append(out, row)
	}
	return out, nil
}
