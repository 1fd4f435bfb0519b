package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo   product.Repository
	schema product.SchemaReader
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, schema product.SchemaReader, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		schema: schema,
		logger: log,
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, model.ErrNotFound)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	f.Normalize()
	if err := uc.resolveSpecFacets(ctx, f); err != nil {
		return nil, 0, err
	}
	return uc.repo.FindAll(ctx, f)
}

// resolveSpecFacets moves query keys that name a characteristic, or its
// _min/_max bound, into the spec facets. Unknown keys are ignored. A boolean
// characteristic filters only on true, like is_new.
func (uc *productUseCase) resolveSpecFacets(ctx context.Context, f *dto.ProductFilters) error {
	if len(f.Extra) == 0 {
		return nil
	}
	types, err := uc.repo.CharacteristicTypes(ctx)
	if err != nil {
		return fmt.Errorf("load characteristic keys: %w", err)
	}
	known := func(key string) bool {
		_, ok := types[key]
		return ok
	}

	if f.Specs == nil {
		f.Specs = map[string][]string{}
	}
	if f.SpecMin == nil {
		f.SpecMin = map[string]float64{}
	}
	if f.SpecMax == nil {
		f.SpecMax = map[string]float64{}
	}

	for key, vals := range f.Extra {
		if t, ok := types[key]; ok {
			if t != model.CharacteristicBoolean {
				f.Specs[key] = vals
			} else if wantsTrue(vals) {
				f.Specs[key] = []string{"true"}
			}
			continue
		}
		if base, ok := strings.CutSuffix(key, "_min"); ok && known(base) {
			v, err := parseBound(key, vals)
			if err != nil {
				return err
			}
			f.SpecMin[base] = v
			continue
		}
		if base, ok := strings.CutSuffix(key, "_max"); ok && known(base) {
			v, err := parseBound(key, vals)
			if err != nil {
				return err
			}
			f.SpecMax[base] = v
			continue
		}
		uc.logger.Debug("ignoring unknown listing parameter", zap.String("key", key))
	}
	return nil
}

func wantsTrue(vals []string) bool {
	for _, v := range vals {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil && b {
			return true
		}
	}
	return false
}

func parseBound(key string, vals []string) (float64, error) {
	v, ok := model.ParseNumber(vals[0])
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", model.ErrValidation, key)
	}
	return v, nil
}

func (uc *productUseCase) GetSpecs(ctx context.Context, productID int64) (model.Specs, error) {
	p, err := uc.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Specs == nil {
		return model.Specs{}, nil
	}
	return p.Specs, nil
}

// SetSpecs replaces the whole spec map of a product.
func (uc *productUseCase) SetSpecs(ctx context.Context, productID int64, specs model.Specs) (model.Specs, error) {
	p, err := uc.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	links, err := uc.schema.List(ctx, p.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load schema of category %d: %w", p.CategoryID, err)
	}

	clean, err := ValidateSpecs(links, specs)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateSpecs(ctx, productID, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

func (uc *productUseCase) GetKeySpecs(ctx context.Context, categoryID int64, specs model.Specs, limit int, l locale.Locale) ([]model.SpecEntry, error) {
	links, err := uc.schema.List(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	keySpecs, _ := SplitSpecs(links, specs, keySpecLimit(limit), l)
	return keySpecs, nil
}

func (uc *productUseCase) GetProductSpecs(ctx context.Context, productID int64, limit int, l locale.Locale) (*model.ProductSpecs, error) {
	p, err := uc.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	links, err := uc.schema.List(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	keySpecs, rest := SplitSpecs(links, p.Specs, keySpecLimit(limit), l)
	return &model.ProductSpecs{ProductID: p.ID, KeySpecs: keySpecs, Specs: rest}, nil
}

func keySpecLimit(limit int) int {
	if limit <= 0 {
		return product.DefaultKeySpecLimit
	}
	return limit
}
