package sheets

import (
	"context"
	"fmt"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
)

// CategoryRepository persists categories as rows of the Categories tab.
type CategoryRepository struct {
	client *Client
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

var _ portsrepo.CategoryRepositoryFacade = (*CategoryRepository)(nil)

func parseCategoryRow(row []interface{}) (domain.Category, error) {
	var cat domain.Category
	var err error

	cat.CategoryID = cellString(row, categoryColID)
	cat.Name = cellString(row, categoryColName)
	if cat.MonthlyBudget, err = cellDecimal(row, categoryColMonthlyBudget); err != nil {
		return cat, err
	}
	return cat, nil
}

func categoryRow(c domain.Category) []interface{} {
	return []interface{}{
		c.CategoryID,
		c.Name,
		c.MonthlyBudget.String(),
	}
}

// ListCategories implements portsrepo.CategoryRepositoryFacade.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.client.readRows(ctx, tabCategories, categoryColCount)
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(rows))
	for i, row := range rows {
		cat, err := parseCategoryRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", tabCategories, i+2, err)
		}
		if cat.CategoryID == "" {
			continue
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

func (r *CategoryRepository) findRow(ctx context.Context, categoryID string) (*domain.Category, int64, error) {
	rows, err := r.client.readRows(ctx, tabCategories, categoryColCount)
	if err != nil {
		return nil, 0, err
	}
	for i, row := range rows {
		if cellString(row, categoryColID) != categoryID {
			continue
		}
		cat, err := parseCategoryRow(row)
		if err != nil {
			return nil, 0, fmt.Errorf("%s row %d: %w", tabCategories, i+2, err)
		}
		return &cat, int64(i + 2), nil
	}
	return nil, 0, fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
}

// FindCategoryByID implements portsrepo.CategoryRepositoryFacade.
func (r *CategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	cat, _, err := r.findRow(ctx, categoryID)
	return cat, err
}

// AppendCategory implements portsrepo.CategoryRepositoryFacade.
func (r *CategoryRepository) AppendCategory(ctx context.Context, category domain.Category) error {
	return r.client.appendRow(ctx, tabCategories, categoryColCount, categoryRow(category))
}

// UpdateCategory implements portsrepo.CategoryRepositoryFacade.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	_, row, err := r.findRow(ctx, category.CategoryID)
	if err != nil {
		return err
	}
	return r.client.updateRow(ctx, tabCategories, row, categoryColCount, categoryRow(category))
}

// DeleteCategory implements portsrepo.CategoryRepositoryFacade.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	_, row, err := r.findRow(ctx, categoryID)
	if err != nil {
		return err
	}
	return r.client.deleteRow(ctx, tabCategories, row)
}
