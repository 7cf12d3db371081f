package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	"github.com/sgaviria/finanzapp/internal/utils/dates"
	"github.com/sgaviria/finanzapp/internal/utils/rates"
)

// moneyScale is the rounding applied to every computed monetary figure.
const moneyScale = 2

// CycleEvent is one dated movement inside a billing period, already filtered
// to amount > 0 and a recognized entry type.
type CycleEvent struct {
	Date        time.Time
	Kind        domain.EntryType
	Amount      decimal.Decimal
	Description string
}

// SortCycleEvents orders events by (date, kind) with payments before charges
// on the same date: a payment reduces the balance before that day's charges
// are layered on.
func SortCycleEvents(events []CycleEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		di, dj := dates.Normalize(events[i].Date), dates.Normalize(events[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return events[i].Kind == domain.EntryPayment && events[j].Kind == domain.EntryCharge
	})
}

// CycleComputation is the pure outcome of one billing cycle walk, before
// carry-over interest is layered on.
type CycleComputation struct {
	Charges    decimal.Decimal
	Payments   decimal.Decimal
	Interest   decimal.Decimal // average-daily-balance interest
	PeriodDays int
}

// ComputeCycleInterest performs the average-daily-balance walk over
// [periodStart, periodEnd): a running balance starts at previousBalance and
// is adjusted by each event on its date; each segment between consecutive
// events accrues dailyRate * runningBalance * segmentDays. Events must
// already be sorted with SortCycleEvents.
func ComputeCycleInterest(previousBalance decimal.Decimal, events []CycleEvent, annualRateUnit decimal.Decimal, periodStart, periodEnd time.Time) CycleComputation {
	periodStart = dates.Normalize(periodStart)
	periodEnd = dates.Normalize(periodEnd)
	dailyRate := rates.DailyRateFromAnnual(annualRateUnit)

	running := previousBalance
	cursor := periodStart
	interest := decimal.Zero
	charges := decimal.Zero
	payments := decimal.Zero

	for _, ev := range events {
		evDate := dates.Normalize(ev.Date)
		if evDate.Before(periodStart) || !evDate.Before(periodEnd) {
			continue
		}
		if segDays := dates.DaysBetween(cursor, evDate); segDays > 0 {
			interest = interest.Add(running.Mul(dailyRate).Mul(decimal.NewFromInt(int64(segDays))))
			cursor = evDate
		}
		switch ev.Kind {
		case domain.EntryPayment:
			running = running.Sub(ev.Amount)
			payments = payments.Add(ev.Amount)
		case domain.EntryCharge:
			running = running.Add(ev.Amount)
			charges = charges.Add(ev.Amount)
		}
	}
	if segDays := dates.DaysBetween(cursor, periodEnd); segDays > 0 {
		interest = interest.Add(running.Mul(dailyRate).Mul(decimal.NewFromInt(int64(segDays))))
	}

	return CycleComputation{
		Charges:    charges,
		Payments:   payments,
		Interest:   interest.Round(moneyScale),
		PeriodDays: dates.DaysBetween(periodStart, periodEnd),
	}
}

// ComputeBonifiableInterest computes the grace-period interest: what the
// statement balance would accrue between the statement date and the due date
// if the statement is not paid in full. It is informational only and never
// added to the persisted statement balance.
func ComputeBonifiableInterest(statementBalance decimal.Decimal, annualRateUnit decimal.Decimal, statementDate, dueDate time.Time) decimal.Decimal {
	graceDays := dates.DaysBetween(statementDate, dueDate)
	if graceDays <= 0 || !statementBalance.IsPositive() {
		return decimal.Zero
	}
	dailyRate := rates.DailyRateFromAnnual(annualRateUnit)
	return statementBalance.Mul(dailyRate).Mul(decimal.NewFromInt(int64(graceDays))).Round(moneyScale)
}

// ComputeInterestCarryOver determines how much of the previous cycle's
// interest remains unpaid and rolls into the current cycle. Payments made
// against the previous statement are attributed to its interest first; a
// statement paid in full carries nothing over.
func ComputeInterestCarryOver(prev *domain.Statement, paymentsMade decimal.Decimal) decimal.Decimal {
	if prev == nil {
		return decimal.Zero
	}
	if prev.IsPaidInFull(paymentsMade) {
		return decimal.Zero
	}
	unpaid := prev.Interests.Sub(paymentsMade)
	if unpaid.IsNegative() {
		return decimal.Zero
	}
	return unpaid.Round(moneyScale)
}

// StatementBalance applies the statement formula:
// max(0, previousBalance + charges + interests - payments).
func StatementBalance(previousBalance, charges, interests, payments decimal.Decimal) decimal.Decimal {
	balance := previousBalance.Add(charges).Add(interests).Sub(payments)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance.Round(moneyScale)
}

// ProjectInstallments projects months future cycles starting with the cycle
// that closes in startYear/startMonth, assuming no new activity: each cycle
// adds one month of simple interest on the declining opening balance.
func ProjectInstallments(debt *domain.Debt, openingBalance decimal.Decimal, startYear int, startMonth time.Month, months int) []InstallmentCycle {
	annualRate := rates.NormalizeAnnualRate(debt.AnnualEffectiveRate)
	monthlyRate := rates.MonthlyRateFromAnnualEffective(annualRate)

	out := make([]InstallmentCycle, 0, months)
	balance := openingBalance
	year, month := startYear, startMonth
	for i := 0; i < months; i++ {
		var stmtDate time.Time
		if debt.HasCutOffDay() {
			stmtDate = dates.DateInMonth(year, month, debt.CutOffDay)
		} else {
			stmtDate = dates.LastDayOfMonth(year, month)
		}
		interest := balance.Mul(monthlyRate).Round(moneyScale)
		projected := balance.Add(interest)
		out = append(out, InstallmentCycle{
			Year:             year,
			Month:            month,
			StatementDate:    stmtDate,
			OpeningBalance:   balance,
			Interest:         interest,
			ProjectedBalance: projected,
		})
		balance = projected
		next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		year, month = next.Year(), next.Month()
	}
	return out
}

// InstallmentCycle is one projected future cycle for a debt.
type InstallmentCycle struct {
	Year             int
	Month            time.Month
	StatementDate    time.Time
	OpeningBalance   decimal.Decimal
	Interest         decimal.Decimal
	ProjectedBalance decimal.Decimal
}
