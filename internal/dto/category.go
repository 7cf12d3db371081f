package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	"github.com/sgaviria/finanzapp/internal/utils"
)

// CreateCategoryRequest is the payload for POST /categories.
type CreateCategoryRequest struct {
	Name          string          `json:"name" binding:"required"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
}

// UpdateCategoryRequest is the payload for PUT /categories/:id.
type UpdateCategoryRequest struct {
	Name          *string          `json:"name,omitempty"`
	MonthlyBudget *decimal.Decimal `json:"monthlyBudget,omitempty"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	CategoryID    string `json:"categoryID"`
	Name          string `json:"name"`
	MonthlyBudget string `json:"monthlyBudget,omitempty"`
}

// CategorySpendResponse reports spent-vs-budget for one category in a month.
type CategorySpendResponse struct {
	CategoryID    string `json:"categoryID"`
	Name          string `json:"name"`
	MonthlyBudget string `json:"monthlyBudget,omitempty"`
	Spent         string `json:"spent"`
	Remaining     string `json:"remaining,omitempty"`
}

// ToCategoryResponse maps a domain category to its API shape.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	resp := CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
	}
	if c.MonthlyBudget.IsPositive() {
		resp.MonthlyBudget = utils.FormatMoney(c.MonthlyBudget)
	}
	return resp
}
