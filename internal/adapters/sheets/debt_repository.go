package sheets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
)

// DebtRepository persists debts as rows of the Debts tab.
type DebtRepository struct {
	client *Client
}

// NewDebtRepository creates a new DebtRepository.
func NewDebtRepository(client *Client) *DebtRepository {
	return &DebtRepository{client: client}
}

var _ portsrepo.DebtRepositoryFacade = (*DebtRepository)(nil)

func parseDebtRow(row []interface{}) (domain.Debt, error) {
	var debt domain.Debt
	var err error

	debt.DebtID = cellString(row, debtColID)
	debt.Name = cellString(row, debtColName)
	debt.Issuer = cellString(row, debtColIssuer)
	if debt.CreditLimit, err = cellDecimal(row, debtColCreditLimit); err != nil {
		return debt, err
	}
	if debt.Balance, err = cellDecimal(row, debtColBalance); err != nil {
		return debt, err
	}
	if debt.DueDay, err = cellInt(row, debtColDueDay); err != nil {
		return debt, err
	}
	if debt.CutOffDay, err = cellInt(row, debtColCutOffDay); err != nil {
		return debt, err
	}
	if debt.Active, err = cellBool(row, debtColActive); err != nil {
		return debt, err
	}
	if debt.AnnualEffectiveRate, err = cellDecimal(row, debtColAnnualRate); err != nil {
		return debt, err
	}
	if debt.CreatedAt, err = cellTime(row, debtColCreatedAt); err != nil {
		return debt, err
	}
	if debt.LastUpdatedAt, err = cellTime(row, debtColUpdatedAt); err != nil {
		return debt, err
	}
	return debt, nil
}

func debtRow(d domain.Debt) []interface{} {
	return []interface{}{
		d.DebtID,
		d.Name,
		d.Issuer,
		d.CreditLimit.String(),
		d.Balance.String(),
		strconv.Itoa(d.DueDay),
		strconv.Itoa(d.CutOffDay),
		strconv.FormatBool(d.Active),
		d.AnnualEffectiveRate.String(),
		timeCell(d.CreatedAt),
		timeCell(d.LastUpdatedAt),
	}
}

// ListDebts implements portsrepo.DebtReader.
func (r *DebtRepository) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	rows, err := r.client.readRows(ctx, tabDebts, debtColCount)
	if err != nil {
		return nil, err
	}
	debts := make([]domain.Debt, 0, len(rows))
	for i, row := range rows {
		debt, err := parseDebtRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", tabDebts, i+2, err)
		}
		if debt.DebtID == "" {
			continue // skip blank rows
		}
		debts = append(debts, debt)
	}
	return debts, nil
}

// findRow returns the debt and its 1-based sheet row.
func (r *DebtRepository) findRow(ctx context.Context, debtID string) (*domain.Debt, int64, error) {
	rows, err := r.client.readRows(ctx, tabDebts, debtColCount)
	if err != nil {
		return nil, 0, err
	}
	for i, row := range rows {
		if cellString(row, debtColID) != debtID {
			continue
		}
		debt, err := parseDebtRow(row)
		if err != nil {
			return nil, 0, fmt.Errorf("%s row %d: %w", tabDebts, i+2, err)
		}
		return &debt, int64(i + 2), nil
	}
	return nil, 0, fmt.Errorf("debt %s: %w", debtID, apperrors.ErrNotFound)
}

// FindDebtByID implements portsrepo.DebtReader.
func (r *DebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	debt, _, err := r.findRow(ctx, debtID)
	return debt, err
}

// AppendDebt implements portsrepo.DebtWriter.
func (r *DebtRepository) AppendDebt(ctx context.Context, debt domain.Debt) error {
	return r.client.appendRow(ctx, tabDebts, debtColCount, debtRow(debt))
}

// UpdateDebt implements portsrepo.DebtWriter.
func (r *DebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	_, row, err := r.findRow(ctx, debt.DebtID)
	if err != nil {
		return err
	}
	return r.client.updateRow(ctx, tabDebts, row, debtColCount, debtRow(debt))
}

// UpdateDebtBalance implements portsrepo.DebtWriter: only the balance cell is
// rewritten.
func (r *DebtRepository) UpdateDebtBalance(ctx context.Context, debtID string, balance decimal.Decimal) error {
	_, row, err := r.findRow(ctx, debtID)
	if err != nil {
		return err
	}
	return r.client.updateCell(ctx, tabDebts, row, debtColBalance, balance.String())
}

// DeleteDebt implements portsrepo.DebtWriter.
func (r *DebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	_, row, err := r.findRow(ctx, debtID)
	if err != nil {
		return err
	}
	return r.client.deleteRow(ctx, tabDebts, row)
}
