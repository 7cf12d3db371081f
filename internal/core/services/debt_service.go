package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/middleware"
	"github.com/sgaviria/finanzapp/internal/utils"
	"github.com/sgaviria/finanzapp/internal/utils/dates"
)

// maxProjectionMonths caps the installments endpoint.
const maxProjectionMonths = 60

// debtService provides debt CRUD and the read-only summary operations.
type debtService struct {
	tenantResolver
	now func() time.Time
}

// DebtOption customizes the debt service.
type DebtOption func(*debtService)

// WithDebtClock overrides the clock used for next-date summaries.
func WithDebtClock(now func() time.Time) DebtOption {
	return func(s *debtService) {
		s.now = now
	}
}

// NewDebtService creates a new DebtService.
func NewDebtService(users portsrepo.UserRepositoryFacade, tenants portsrepo.TenantRepositoryFactory, opts ...DebtOption) portssvc.DebtSvcFacade {
	s := &debtService{
		tenantResolver: tenantResolver{users: users, tenants: tenants},
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// ListDebts implements portssvc.DebtSvcFacade.
func (s *debtService) ListDebts(ctx context.Context, userID string) ([]domain.Debt, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return repos.Debts.ListDebts(ctx)
}

// CreateDebt implements portssvc.DebtSvcFacade.
func (s *debtService) CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	debt := domain.Debt{
		DebtID:              uuid.NewString(),
		Name:                req.Name,
		Issuer:              req.Issuer,
		CreditLimit:         req.CreditLimit,
		Balance:             req.Balance,
		DueDay:              req.DueDay,
		CutOffDay:           req.CutOffDay,
		Active:              true,
		AnnualEffectiveRate: req.AnnualEffectiveRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := repos.Debts.AppendDebt(ctx, debt); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Debt created",
		slog.String("debt_id", debt.DebtID), slog.String("name", debt.Name))
	return &debt, nil
}

// UpdateDebt implements portssvc.DebtSvcFacade. Nil request fields are left
// untouched.
func (s *debtService) UpdateDebt(ctx context.Context, userID, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	debt, err := repos.Debts.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		debt.Name = *req.Name
	}
	if req.Issuer != nil {
		debt.Issuer = *req.Issuer
	}
	if req.CreditLimit != nil {
		debt.CreditLimit = *req.CreditLimit
	}
	if req.Balance != nil {
		debt.Balance = *req.Balance
	}
	if req.DueDay != nil {
		debt.DueDay = *req.DueDay
	}
	if req.CutOffDay != nil {
		debt.CutOffDay = *req.CutOffDay
	}
	if req.Active != nil {
		debt.Active = *req.Active
	}
	if req.AnnualEffectiveRate != nil {
		debt.AnnualEffectiveRate = *req.AnnualEffectiveRate
	}
	debt.LastUpdatedAt = s.now()
	debt.LastUpdatedBy = userID

	if err := repos.Debts.UpdateDebt(ctx, *debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// DeleteDebt implements portssvc.DebtSvcFacade.
func (s *debtService) DeleteDebt(ctx context.Context, userID, debtID string) error {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := repos.Debts.FindDebtByID(ctx, debtID); err != nil {
		return err
	}
	return repos.Debts.DeleteDebt(ctx, debtID)
}

// GetDebtSummary implements portssvc.DebtSvcFacade.
func (s *debtService) GetDebtSummary(ctx context.Context, userID, debtID string) (*dto.DebtSummaryResponse, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	debt, err := repos.Debts.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(ctx, repos, debt)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ListDebtSummaries implements portssvc.DebtSvcFacade.
func (s *debtService) ListDebtSummaries(ctx context.Context, userID string) ([]dto.DebtSummaryResponse, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	debts, err := repos.Debts.ListDebts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DebtSummaryResponse, 0, len(debts))
	for i := range debts {
		summary, err := s.summarize(ctx, repos, &debts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}
	return out, nil
}

func (s *debtService) summarize(ctx context.Context, repos *portsrepo.TenantRepos, debt *domain.Debt) (*dto.DebtSummaryResponse, error) {
	summary := &dto.DebtSummaryResponse{
		DebtID:      debt.DebtID,
		Name:        debt.Name,
		Balance:     utils.FormatMoney(debt.Balance),
		CreditLimit: utils.FormatMoney(debt.CreditLimit),
	}

	if debt.CreditLimit.IsPositive() {
		summary.Utilization = debt.Balance.DivRound(debt.CreditLimit, 4).String()
		summary.Available = utils.FormatMoney(debt.CreditLimit.Sub(debt.Balance))
	}

	today := dates.Normalize(s.now())
	if debt.HasCutOffDay() {
		summary.NextCutOffDate = dates.NextOccurrenceOfDay(debt.CutOffDay, today).Format(time.DateOnly)
	}
	if debt.HasDueDay() {
		summary.NextDueDate = dates.NextOccurrenceOfDay(debt.DueDay, today).Format(time.DateOnly)
	}

	last, err := repos.Statements.FindLatestBefore(ctx, debt.DebtID, today.AddDate(0, 0, 1))
	if err == nil {
		resp := dto.ToStatementResponse(last)
		summary.LastStatement = &resp
	} else if !isNotFound(err) {
		return nil, err
	}
	return summary, nil
}

// ListStatements implements portssvc.DebtSvcFacade.
func (s *debtService) ListStatements(ctx context.Context, userID, debtID string) ([]dto.StatementResponse, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := repos.Debts.FindDebtByID(ctx, debtID); err != nil {
		return nil, err
	}
	statements, err := repos.Statements.ListStatements(ctx, debtID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatementResponse, 0, len(statements))
	for i := range statements {
		out = append(out, dto.ToStatementResponse(&statements[i]))
	}
	return out, nil
}

// ProjectInstallments implements portssvc.DebtSvcFacade.
func (s *debtService) ProjectInstallments(ctx context.Context, userID, debtID string, months int, start string) ([]dto.InstallmentProjection, error) {
	if months <= 0 || months > maxProjectionMonths {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("months must be between 1 and %d", maxProjectionMonths))
	}

	startYear, startMonth := s.now().Year(), s.now().Month()
	if start != "" {
		parsed, err := time.Parse("2006-01", start)
		if err != nil {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("Invalid start %q, expected YYYY-MM", start))
		}
		startYear, startMonth = parsed.Year(), parsed.Month()
	}

	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	debt, err := repos.Debts.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	cycles := ProjectInstallments(debt, debt.Balance, startYear, startMonth, months)
	out := make([]dto.InstallmentProjection, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, dto.InstallmentProjection{
			Period:           fmt.Sprintf("%04d-%02d", c.Year, int(c.Month)),
			StatementDate:    c.StatementDate.Format(time.DateOnly),
			OpeningBalance:   utils.FormatMoney(c.OpeningBalance),
			Interest:         utils.FormatMoney(c.Interest),
			ProjectedBalance: utils.FormatMoney(c.ProjectedBalance),
		})
	}
	return out, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
