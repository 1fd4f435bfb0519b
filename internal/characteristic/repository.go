package characteristic

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Characteristic) error
	FindByID(ctx context.Context, id int64) (*model.Characteristic, error)
	FindAll(ctx context.Context, filters *dto.CharacteristicFilters) ([]model.Characteristic, error)
	Update(ctx context.Context, c *model.Characteristic) error
	Delete(ctx context.Context, id int64) error
	// CountLinks returns how many categories the characteristic is linked to.
	CountLinks(ctx context.Context, id int64) (int, error)
}
