package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	// FindAll expects filters whose characteristic facets are already resolved.
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateSpecs(ctx context.Context, id int64, specs model.Specs) error
	// CharacteristicTypes maps every registered characteristic key to its type.
	CharacteristicTypes(ctx context.Context) (map[string]model.CharacteristicType, error)
}

// SchemaReader returns the characteristics linked to a category, ordered by
// order_index.
type SchemaReader interface {
	List(ctx context.Context, categoryID int64) ([]model.LinkedCharacteristic, error)
}
