package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

// DefaultKeySpecLimit is how many key specs a product summary shows.
const DefaultKeySpecLimit = 3

type UseCase interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	GetSpecs(ctx context.Context, productID int64) (model.Specs, error)
	SetSpecs(ctx context.Context, productID int64, specs model.Specs) (model.Specs, error)
	GetKeySpecs(ctx context.Context, categoryID int64, specs model.Specs, limit int, l locale.Locale) ([]model.SpecEntry, error)
	GetProductSpecs(ctx context.Context, productID int64, limit int, l locale.Locale) (*model.ProductSpecs, error)
}
