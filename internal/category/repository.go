package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	// FindActiveWithCounts returns every active category with its direct
	// product and characteristic counts, ordered by order_index, id.
	FindActiveWithCounts(ctx context.Context) ([]model.CategoryCounts, error)
	CountChildren(ctx context.Context, id int64) (int, error)
	Update(ctx context.Context, category *model.Category) error
}
