package repositories

import (
	"context"

	"github.com/sgaviria/finanzapp/internal/core/domain"
)

// CategoryRepositoryFacade defines operations over the Categories sheet.
type CategoryRepositoryFacade interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	AppendCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}
