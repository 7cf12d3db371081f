package sheets

import "fmt"

// Tab names inside every tenant spreadsheet, plus the Users tab of the master
// spreadsheet.
const (
	tabDebts         = "Debts"
	tabExpenses      = "Expenses"
	tabCreditHistory = "CreditHistory"
	tabCategories    = "Categories"
	tabUsers         = "Users"
)

// Column indices per entity. Rows are positional; the header row of each tab
// is validated against these layouts at client construction so a schema drift
// fails fast instead of producing silently shifted values.
const (
	debtColID = iota
	debtColName
	debtColIssuer
	debtColCreditLimit
	debtColBalance
	debtColDueDay
	debtColCutOffDay
	debtColActive
	debtColAnnualRate
	debtColCreatedAt
	debtColUpdatedAt
	debtColCount
)

const (
	expenseColID = iota
	expenseColDebtID
	expenseColCategoryID
	expenseColDate
	expenseColAmount
	expenseColEntryType
	expenseColDescription
	expenseColCount
)

const (
	stmtColDebtID = iota
	stmtColStatementDate
	stmtColDueDate
	stmtColPreviousBalance
	stmtColCharges
	stmtColInterests
	stmtColPayments
	stmtColStatementBalance
	stmtColBonifiable
	stmtColInstallment
	stmtColAnnualRate
	stmtColPeriodDays
	stmtColPaymentMade
	stmtColCount
)

const (
	categoryColID = iota
	categoryColName
	categoryColMonthlyBudget
	categoryColCount
)

const (
	userColID = iota
	userColName
	userColEmail
	userColProvider
	userColProviderUserID
	userColEmailVerified
	userColSpreadsheetID
	userColRefreshToken
	userColAccessToken
	userColTokenExpiry
	userColCreatedAt
	userColUpdatedAt
	userColCount
)

// expectedHeaders maps each tab to the header row it must carry.
var expectedHeaders = map[string][]string{
	tabDebts: {
		"ID", "Name", "Issuer", "CreditLimit", "Balance",
		"DueDay", "CutOffDay", "Active", "AnnualEffectiveRate",
		"CreatedAt", "UpdatedAt",
	},
	tabExpenses: {
		"ID", "DebtID", "CategoryID", "Date", "Amount", "EntryType", "Description",
	},
	tabCreditHistory: {
		"DebtID", "StatementDate", "DueDate", "PreviousBalance", "Charges",
		"Interests", "Payments", "StatementBalance", "BonifiableInterest",
		"InstallmentBalance", "AnnualEffectiveRate", "PeriodDays", "PaymentMade",
	},
	tabCategories: {
		"ID", "Name", "MonthlyBudget",
	},
}

// userHeaders is validated separately: the Users tab lives in the master
// spreadsheet, not in tenant documents.
var userHeaders = []string{
	"ID", "Name", "Email", "Provider", "ProviderUserID", "EmailVerified",
	"SpreadsheetID", "RefreshToken", "AccessToken", "TokenExpiry",
	"CreatedAt", "UpdatedAt",
}

// columnLetter converts a zero-based column index to its A1 letter. Tabs here
// never exceed 26 columns.
func columnLetter(idx int) string {
	return string(rune('A' + idx))
}

// dataRange returns the A1 range covering all data rows of a tab with the
// given column count, skipping the header row.
func dataRange(tab string, colCount int) string {
	return fmt.Sprintf("%s!A2:%s", tab, columnLetter(colCount-1))
}

// rowRange returns the A1 range addressing one data row. Row references are
// 1-based sheet rows (data starts at row 2).
func rowRange(tab string, row int64, colCount int) string {
	return fmt.Sprintf("%s!A%d:%s%d", tab, row, columnLetter(colCount-1), row)
}
