package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/middleware"
	"github.com/sgaviria/finanzapp/internal/utils"
	"github.com/sgaviria/finanzapp/internal/utils/dates"
	"github.com/sgaviria/finanzapp/internal/utils/rates"
)

const skipReasonInactive = "Debt is inactive"

// defaultDueDay is used when a debt has no due day configured.
const defaultDueDay = 25

// keyedMutex serializes accrual per debt id so two concurrent invocations for
// the same (debtID, statementDate) cannot both pass the idempotency check and
// append twice. Entries are never evicted; the map is bounded by the number
// of debts seen by this process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// accrualService orchestrates a single billing-cycle accrual per invocation.
type accrualService struct {
	tenantResolver
	locks *keyedMutex
	now   func() time.Time
}

// AccrualOption customizes the accrual service.
type AccrualOption func(*accrualService)

// WithAccrualClock overrides the clock used to derive statement dates when no
// explicit period or date is supplied. Tests inject a fixed clock.
func WithAccrualClock(now func() time.Time) AccrualOption {
	return func(s *accrualService) {
		s.now = now
	}
}

// NewAccrualService creates the accrual orchestrator.
func NewAccrualService(users portsrepo.UserRepositoryFacade, tenants portsrepo.TenantRepositoryFactory, opts ...AccrualOption) portssvc.AccrualSvcFacade {
	s := &accrualService{
		tenantResolver: tenantResolver{users: users, tenants: tenants},
		locks:          newKeyedMutex(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.AccrualSvcFacade = (*accrualService)(nil)

// cycleDates holds the resolved dates for one billing cycle.
type cycleDates struct {
	statementDate time.Time
	dueDate       time.Time
	prevStatement time.Time // cutoff closing the previous cycle
}

// resolveCycleDates applies the date-resolution rules: an explicit date wins,
// then an explicit period, then a derivation from today against the debt's
// cutoff day.
func resolveCycleDates(debt *domain.Debt, req dto.AccrueRequest, today time.Time) (cycleDates, error) {
	if req.Period != "" && req.Date != "" {
		return cycleDates{}, apperrors.NewBadRequestError("Specify either period or date, not both")
	}

	var stmtDate time.Time
	switch {
	case req.Date != "":
		parsed, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			return cycleDates{}, apperrors.NewBadRequestError(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", req.Date))
		}
		stmtDate = dates.Normalize(parsed)
	case req.Period != "":
		parsed, err := time.Parse("2006-01", req.Period)
		if err != nil {
			return cycleDates{}, apperrors.NewBadRequestError(fmt.Sprintf("Invalid period %q, expected YYYY-MM", req.Period))
		}
		if debt.HasCutOffDay() {
			stmtDate = dates.DateInMonth(parsed.Year(), parsed.Month(), debt.CutOffDay)
		} else {
			stmtDate = dates.LastDayOfMonth(parsed.Year(), parsed.Month())
		}
	default:
		today = dates.Normalize(today)
		if debt.HasCutOffDay() {
			cutoff := dates.ClampDayToMonth(today.Year(), today.Month(), debt.CutOffDay)
			if today.Day() >= cutoff {
				stmtDate = dates.DateInMonth(today.Year(), today.Month(), debt.CutOffDay)
			} else {
				prior := today.AddDate(0, 0, -today.Day()) // last day of previous month
				stmtDate = dates.DateInMonth(prior.Year(), prior.Month(), debt.CutOffDay)
			}
		} else {
			stmtDate = dates.LastDayOfMonth(today.Year(), today.Month()-1)
		}
	}

	var dueDate time.Time
	if debt.HasDueDay() {
		dueDate = dates.NextOccurrenceOfDay(debt.DueDay, stmtDate)
	} else {
		dueDate = dates.DateInMonth(stmtDate.Year(), stmtDate.Month(), defaultDueDay)
	}

	priorMonth := time.Date(stmtDate.Year(), stmtDate.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	var prevStmtDate time.Time
	if debt.HasCutOffDay() {
		prevStmtDate = dates.DateInMonth(priorMonth.Year(), priorMonth.Month(), debt.CutOffDay)
	} else {
		prevStmtDate = dates.LastDayOfMonth(priorMonth.Year(), priorMonth.Month())
	}

	return cycleDates{statementDate: stmtDate, dueDate: dueDate, prevStatement: prevStmtDate}, nil
}

// Accrue implements portssvc.AccrualSvcFacade.
func (s *accrualService) Accrue(ctx context.Context, userID, debtID string, req dto.AccrueRequest) (*dto.AccrualResult, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.AccrueForTenant(ctx, repos, debtID, req)
}

// AccrueForTenant implements portssvc.AccrualSvcFacade.
func (s *accrualService) AccrueForTenant(ctx context.Context, repos *portsrepo.TenantRepos, debtID string, req dto.AccrueRequest) (*dto.AccrualResult, error) {
	unlock := s.locks.Lock(debtID)
	defer unlock()

	logger := middleware.GetLoggerFromCtx(ctx)

	comp, err := s.computeCycle(ctx, repos, debtID, req)
	if err != nil {
		return nil, err
	}
	if comp.skipped != nil {
		return comp.skipped, nil
	}

	// Persistence is the last step: nothing is written unless the whole
	// computation succeeded.
	if comp.existingRow > 0 {
		if err := repos.Statements.UpdateStatementAt(ctx, comp.existingRow, comp.statement); err != nil {
			return nil, err
		}
	} else {
		if err := repos.Statements.AppendStatement(ctx, comp.statement); err != nil {
			return nil, err
		}
	}

	newBalance, err := s.recomputeRunningBalance(ctx, repos, comp.statement)
	if err != nil {
		return nil, err
	}
	if err := repos.Debts.UpdateDebtBalance(ctx, debtID, newBalance); err != nil {
		return nil, err
	}

	logger.Info("Statement accrued",
		slog.String("debt_id", debtID),
		slog.String("statement_date", comp.statement.StatementDate.Format(time.DateOnly)),
		slog.String("statement_balance", comp.statement.StatementBalance.String()),
		slog.String("new_balance", newBalance.String()),
	)

	stmtResp := dto.ToStatementResponse(&comp.statement)
	return &dto.AccrualResult{
		Key:           comp.statement.Key(),
		StatementDate: comp.statement.StatementDate.Format(time.DateOnly),
		Statement:     &stmtResp,
		NewBalance:    utils.FormatMoney(newBalance),
	}, nil
}

// Preview implements portssvc.AccrualSvcFacade. It performs the same
// computation as Accrue but persists nothing and itemizes the period's
// movements.
func (s *accrualService) Preview(ctx context.Context, userID, debtID string, req dto.AccrueRequest) (*dto.StatementPreview, error) {
	repos, _, err := s.reposFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	comp, err := s.computeCycle(ctx, repos, debtID, req)
	if err != nil {
		return nil, err
	}
	if comp.skipped != nil {
		return &dto.StatementPreview{
			Skipped:       true,
			Reason:        comp.skipped.Reason,
			Key:           comp.skipped.Key,
			StatementDate: comp.skipped.StatementDate,
		}, nil
	}

	preview := &dto.StatementPreview{
		Key:           comp.statement.Key(),
		StatementDate: comp.statement.StatementDate.Format(time.DateOnly),
	}
	stmtResp := dto.ToStatementResponse(&comp.statement)
	preview.Statement = &stmtResp
	for _, ev := range comp.events {
		item := dto.PeriodItem{
			Date:        ev.Date.Format(time.DateOnly),
			Amount:      utils.FormatMoney(ev.Amount),
			Description: ev.Description,
		}
		if ev.Kind == domain.EntryCharge {
			preview.ChargeItems = append(preview.ChargeItems, item)
		} else {
			preview.PaymentItems = append(preview.PaymentItems, item)
		}
	}
	return preview, nil
}

// cycleComputation carries everything computeCycle produced. When skipped is
// non-nil the cycle already has a statement and nothing else is filled in.
type cycleComputation struct {
	skipped     *dto.AccrualResult
	statement   domain.Statement
	events      []CycleEvent
	existingRow portsrepo.RowRef
}

// computeCycle runs steps 1-8 of the accrual state machine: load and gate the
// debt, resolve dates, check idempotency, determine the previous balance,
// gather period events and compute the statement. It performs no writes.
func (s *accrualService) computeCycle(ctx context.Context, repos *portsrepo.TenantRepos, debtID string, req dto.AccrueRequest) (*cycleComputation, error) {
	debt, err := repos.Debts.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if !debt.Active {
		return &cycleComputation{skipped: &dto.AccrualResult{Skipped: true, Reason: skipReasonInactive}}, nil
	}

	cycle, err := resolveCycleDates(debt, req, s.now())
	if err != nil {
		return nil, err
	}

	var existingRow portsrepo.RowRef
	existing, row, err := repos.Statements.FindByDebtAndDate(ctx, debtID, cycle.statementDate)
	switch {
	case err == nil:
		if !req.Recompute {
			return &cycleComputation{skipped: &dto.AccrualResult{
				Skipped:       true,
				Reason:        "Statement already exists",
				Key:           existing.Key(),
				StatementDate: existing.StatementDate.Format(time.DateOnly),
			}}, nil
		}
		existingRow = row
	case errors.Is(err, apperrors.ErrNotFound):
		// first computation for this cycle
	default:
		return nil, err
	}

	previousBalance := debt.Balance
	prevStmt, err := repos.Statements.FindLatestBefore(ctx, debtID, cycle.statementDate)
	switch {
	case err == nil:
		previousBalance = prevStmt.StatementBalance
	case errors.Is(err, apperrors.ErrNotFound):
		prevStmt = nil
	default:
		return nil, err
	}

	// Period events live in [prevStatementDate + 1 day, statementDate), start
	// inclusive, end exclusive.
	periodStart := cycle.prevStatement.AddDate(0, 0, 1)
	expenses, err := repos.Expenses.ListExpensesByDebt(ctx, debtID, periodStart, cycle.statementDate.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	events := make([]CycleEvent, 0, len(expenses))
	for _, e := range expenses {
		if !e.CountsForAccrual() {
			continue
		}
		events = append(events, CycleEvent{
			Date:        dates.Normalize(e.Date),
			Kind:        e.EntryType,
			Amount:      e.Amount,
			Description: e.Description,
		})
	}
	SortCycleEvents(events)

	carryOver := decimal.Zero
	if prevStmt != nil {
		paymentsMade, err := repos.Expenses.SumPaymentsForDebt(ctx, debtID, prevStmt.StatementDate, prevStmt.DueDate)
		if err != nil {
			return nil, err
		}
		carryOver = ComputeInterestCarryOver(prevStmt, paymentsMade)
	}

	annualRate := rates.NormalizeAnnualRate(debt.AnnualEffectiveRate)
	comp := ComputeCycleInterest(previousBalance, events, annualRate, periodStart, cycle.statementDate)

	interests := comp.Interest.Add(carryOver)
	statementBalance := StatementBalance(previousBalance, comp.Charges, interests, comp.Payments)
	bonifiable := ComputeBonifiableInterest(statementBalance, annualRate, cycle.statementDate, cycle.dueDate)

	paymentMade, err := repos.Expenses.SumPaymentsForDebt(ctx, debtID, cycle.statementDate, cycle.dueDate)
	if err != nil {
		return nil, err
	}

	return &cycleComputation{
		statement: domain.Statement{
			DebtID:              debtID,
			StatementDate:       cycle.statementDate,
			DueDate:             cycle.dueDate,
			PreviousBalance:     previousBalance.Round(moneyScale),
			Charges:             comp.Charges.Round(moneyScale),
			Interests:           interests.Round(moneyScale),
			Payments:            comp.Payments.Round(moneyScale),
			StatementBalance:    statementBalance,
			BonifiableInterest:  bonifiable,
			InstallmentBalance:  statementBalance.Add(bonifiable),
			AnnualEffectiveRate: annualRate,
			PeriodDays:          comp.PeriodDays,
			PaymentMade:         paymentMade.Round(moneyScale),
		},
		events:      events,
		existingRow: existingRow,
	}, nil
}

// recomputeRunningBalance applies out-of-cycle movements to the fresh
// statement balance: charges after the statement date up to now increase it,
// payments decrease it.
func (s *accrualService) recomputeRunningBalance(ctx context.Context, repos *portsrepo.TenantRepos, stmt domain.Statement) (decimal.Decimal, error) {
	today := dates.Normalize(s.now())
	balance := stmt.StatementBalance
	if !today.After(stmt.StatementDate) {
		return balance, nil
	}
	after, err := repos.Expenses.ListExpensesByDebt(ctx, stmt.DebtID, stmt.StatementDate.AddDate(0, 0, 1), today)
	if err != nil {
		return decimal.Zero, err
	}
	for _, e := range after {
		if !e.CountsForAccrual() {
			continue
		}
		switch e.EntryType {
		case domain.EntryCharge:
			balance = balance.Add(e.Amount)
		case domain.EntryPayment:
			balance = balance.Sub(e.Amount)
		}
	}
	return balance.Round(moneyScale), nil
}
