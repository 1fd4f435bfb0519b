package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	GetTree(ctx context.Context, l locale.Locale) ([]*model.CategoryNode, error)
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeactivateCategory(ctx context.Context, id int64) error
}

// TreeCache stores rendered trees per locale. Implementations must treat
// every error as a miss.
type TreeCache interface {
	Get(ctx context.Context, l locale.Locale) ([]*model.CategoryNode, bool)
	Set(ctx context.Context, l locale.Locale, nodes []*model.CategoryNode)
	Invalidate(ctx context.Context)
}
