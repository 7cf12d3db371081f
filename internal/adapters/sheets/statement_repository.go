package sheets

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	"github.com/sgaviria/finanzapp/internal/utils/dates"
)

// StatementRepository persists statement ledger entries as rows of the
// CreditHistory tab. Rows are append-only except for recomputes, which
// overwrite in place via the row reference returned by FindByDebtAndDate.
type StatementRepository struct {
	client *Client
}

// NewStatementRepository creates a new StatementRepository.
func NewStatementRepository(client *Client) *StatementRepository {
	return &StatementRepository{client: client}
}

var _ portsrepo.StatementRepositoryFacade = (*StatementRepository)(nil)

func parseStatementRow(row []interface{}) (domain.Statement, error) {
	var stmt domain.Statement
	var err error

	stmt.DebtID = cellString(row, stmtColDebtID)
	if stmt.StatementDate, err = cellDate(row, stmtColStatementDate); err != nil {
		return stmt, err
	}
	if stmt.DueDate, err = cellDate(row, stmtColDueDate); err != nil {
		return stmt, err
	}
	if stmt.PreviousBalance, err = cellDecimal(row, stmtColPreviousBalance); err != nil {
		return stmt, err
	}
	if stmt.Charges, err = cellDecimal(row, stmtColCharges); err != nil {
		return stmt, err
	}
	if stmt.Interests, err = cellDecimal(row, stmtColInterests); err != nil {
		return stmt, err
	}
	if stmt.Payments, err = cellDecimal(row, stmtColPayments); err != nil {
		return stmt, err
	}
	if stmt.StatementBalance, err = cellDecimal(row, stmtColStatementBalance); err != nil {
		return stmt, err
	}
	if stmt.BonifiableInterest, err = cellDecimal(row, stmtColBonifiable); err != nil {
		return stmt, err
	}
	if stmt.InstallmentBalance, err = cellDecimal(row, stmtColInstallment); err != nil {
		return stmt, err
	}
	if stmt.AnnualEffectiveRate, err = cellDecimal(row, stmtColAnnualRate); err != nil {
		return stmt, err
	}
	if stmt.PeriodDays, err = cellInt(row, stmtColPeriodDays); err != nil {
		return stmt, err
	}
	if stmt.PaymentMade, err = cellDecimal(row, stmtColPaymentMade); err != nil {
		return stmt, err
	}
	return stmt, nil
}

func statementRow(s domain.Statement) []interface{} {
	return []interface{}{
		s.DebtID,
		dateCell(s.StatementDate),
		dateCell(s.DueDate),
		s.PreviousBalance.String(),
		s.Charges.String(),
		s.Interests.String(),
		s.Payments.String(),
		s.StatementBalance.String(),
		s.BonifiableInterest.String(),
		s.InstallmentBalance.String(),
		s.AnnualEffectiveRate.String(),
		strconv.Itoa(s.PeriodDays),
		s.PaymentMade.String(),
	}
}

func (r *StatementRepository) readAll(ctx context.Context) ([]domain.Statement, error) {
	rows, err := r.client.readRows(ctx, tabCreditHistory, stmtColCount)
	if err != nil {
		return nil, err
	}
	statements := make([]domain.Statement, 0, len(rows))
	for i, row := range rows {
		stmt, err := parseStatementRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", tabCreditHistory, i+2, err)
		}
		if stmt.DebtID == "" {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

// ListStatements implements portsrepo.StatementReader.
func (r *StatementRepository) ListStatements(ctx context.Context, debtID string) ([]domain.Statement, error) {
	all, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Statement
	for _, stmt := range all {
		if stmt.DebtID == debtID {
			out = append(out, stmt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StatementDate.Before(out[j].StatementDate)
	})
	return out, nil
}

// FindByDebtAndDate implements portsrepo.StatementReader.
func (r *StatementRepository) FindByDebtAndDate(ctx context.Context, debtID string, statementDate time.Time) (*domain.Statement, portsrepo.RowRef, error) {
	rows, err := r.client.readRows(ctx, tabCreditHistory, stmtColCount)
	if err != nil {
		return nil, 0, err
	}
	want := dates.Normalize(statementDate).Format(time.DateOnly)
	for i, row := range rows {
		if cellString(row, stmtColDebtID) != debtID || cellString(row, stmtColStatementDate) != want {
			continue
		}
		stmt, err := parseStatementRow(row)
		if err != nil {
			return nil, 0, fmt.Errorf("%s row %d: %w", tabCreditHistory, i+2, err)
		}
		return &stmt, portsrepo.RowRef(i + 2), nil
	}
	return nil, 0, fmt.Errorf("statement %s@%s: %w", debtID, want, apperrors.ErrNotFound)
}

// FindLatestBefore implements portsrepo.StatementReader.
func (r *StatementRepository) FindLatestBefore(ctx context.Context, debtID string, before time.Time) (*domain.Statement, error) {
	statements, err := r.ListStatements(ctx, debtID)
	if err != nil {
		return nil, err
	}
	before = dates.Normalize(before)
	var latest *domain.Statement
	for i := range statements {
		if statements[i].StatementDate.Before(before) {
			latest = &statements[i]
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("no statement for %s before %s: %w",
			debtID, before.Format(time.DateOnly), apperrors.ErrNotFound)
	}
	return latest, nil
}

// AppendStatement implements portsrepo.StatementWriter.
func (r *StatementRepository) AppendStatement(ctx context.Context, statement domain.Statement) error {
	return r.client.appendRow(ctx, tabCreditHistory, stmtColCount, statementRow(statement))
}

// UpdateStatementAt implements portsrepo.StatementWriter.
func (r *StatementRepository) UpdateStatementAt(ctx context.Context, row portsrepo.RowRef, statement domain.Statement) error {
	return r.client.updateRow(ctx, tabCreditHistory, int64(row), stmtColCount, statementRow(statement))
}
