package sheets

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	"github.com/sgaviria/finanzapp/internal/utils/dates"
)

// ExpenseRepository persists expenses as rows of the Expenses tab.
type ExpenseRepository struct {
	client *Client
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(client *Client) *ExpenseRepository {
	return &ExpenseRepository{client: client}
}

var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

func parseExpenseRow(row []interface{}) (domain.Expense, error) {
	var exp domain.Expense
	var err error

	exp.ExpenseID = cellString(row, expenseColID)
	exp.DebtID = cellString(row, expenseColDebtID)
	exp.CategoryID = cellString(row, expenseColCategoryID)
	if exp.Date, err = cellDate(row, expenseColDate); err != nil {
		return exp, err
	}
	if exp.Amount, err = cellDecimal(row, expenseColAmount); err != nil {
		return exp, err
	}
	exp.EntryType = domain.EntryType(cellString(row, expenseColEntryType))
	exp.Description = cellString(row, expenseColDescription)
	return exp, nil
}

func expenseRow(e domain.Expense) []interface{} {
	return []interface{}{
		e.ExpenseID,
		e.DebtID,
		e.CategoryID,
		dateCell(e.Date),
		e.Amount.String(),
		string(e.EntryType),
		e.Description,
	}
}

// ListExpenses implements portsrepo.ExpenseReader.
func (r *ExpenseRepository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	rows, err := r.client.readRows(ctx, tabExpenses, expenseColCount)
	if err != nil {
		return nil, err
	}
	expenses := make([]domain.Expense, 0, len(rows))
	for i, row := range rows {
		exp, err := parseExpenseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", tabExpenses, i+2, err)
		}
		if exp.ExpenseID == "" {
			continue
		}
		expenses = append(expenses, exp)
	}
	return expenses, nil
}

// ListExpensesByDebt implements portsrepo.ExpenseReader. Results are sorted
// chronologically regardless of sheet order.
func (r *ExpenseRepository) ListExpensesByDebt(ctx context.Context, debtID string, from, to time.Time) ([]domain.Expense, error) {
	all, err := r.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	from, to = dates.Normalize(from), dates.Normalize(to)

	var out []domain.Expense
	for _, exp := range all {
		if exp.DebtID != debtID {
			continue
		}
		d := dates.Normalize(exp.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, exp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// SumPaymentsForDebt implements portsrepo.ExpenseReader.
func (r *ExpenseRepository) SumPaymentsForDebt(ctx context.Context, debtID string, from, to time.Time) (decimal.Decimal, error) {
	expenses, err := r.ListExpensesByDebt(ctx, debtID, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, exp := range expenses {
		if exp.EntryType == domain.EntryPayment && exp.CountsForAccrual() {
			total = total.Add(exp.Amount)
		}
	}
	return total, nil
}

func (r *ExpenseRepository) findRow(ctx context.Context, expenseID string) (int64, error) {
	rows, err := r.client.readRows(ctx, tabExpenses, expenseColCount)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if cellString(row, expenseColID) == expenseID {
			return int64(i + 2), nil
		}
	}
	return 0, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
}

// AppendExpense implements portsrepo.ExpenseWriter.
func (r *ExpenseRepository) AppendExpense(ctx context.Context, expense domain.Expense) error {
	return r.client.appendRow(ctx, tabExpenses, expenseColCount, expenseRow(expense))
}

// UpdateExpense implements portsrepo.ExpenseWriter.
func (r *ExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	row, err := r.findRow(ctx, expense.ExpenseID)
	if err != nil {
		return err
	}
	return r.client.updateRow(ctx, tabExpenses, row, expenseColCount, expenseRow(expense))
}

// DeleteExpense implements portsrepo.ExpenseWriter.
func (r *ExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	row, err := r.findRow(ctx, expenseID)
	if err != nil {
		return err
	}
	return r.client.deleteRow(ctx, tabExpenses, row)
}
