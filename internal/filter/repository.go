package filter

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, f *model.FilterDefinition) error
	FindByID(ctx context.Context, id int64) (*model.FilterDefinition, error)
	FindBySubcategory(ctx context.Context, subcategoryID int64) ([]model.FilterDefinition, error)
	Update(ctx context.Context, f *model.FilterDefinition) error
	Delete(ctx context.Context, id int64) error
}
