package services

import (
	"context"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	"github.com/sgaviria/finanzapp/internal/dto"
)

// CategorySvcFacade exposes category CRUD plus the monthly spend report.
type CategorySvcFacade interface {
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	// MonthlySpend reports spent-vs-budget per category for a YYYY-MM period.
	MonthlySpend(ctx context.Context, userID, period string) ([]dto.CategorySpendResponse, error)
}
