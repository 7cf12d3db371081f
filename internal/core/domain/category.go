package domain

import "github.com/shopspring/decimal"

// Category groups expenses for reporting. MonthlyBudget is optional (zero
// means no budget configured).
type Category struct {
	CategoryID    string          `json:"categoryID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	AuditFields
}
