package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/util"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	cache  category.TreeCache
	logger logger.ZapLogger
}

// NewCategoryUseCase wires the tree use case. cache may be nil.
func NewCategoryUseCase(repo category.Repository, cache category.TreeCache, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *categoryUseCase) GetTree(ctx context.Context, l locale.Locale) ([]*model.CategoryNode, error) {
	if uc.cache != nil {
		if nodes, ok := uc.cache.Get(ctx, l); ok {
			return nodes, nil
		}
	}

	rows, err := uc.repo.FindActiveWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	tree := BuildTree(rows, l)

	if uc.cache != nil {
		uc.cache.Set(ctx, l, tree)
	}
	return tree, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if strings.TrimSpace(input.NameRu) == "" {
		return nil, fmt.Errorf("%w: name_ru is required", model.ErrValidation)
	}
	if input.ParentID != nil {
		if err := uc.validateParent(ctx, 0, *input.ParentID); err != nil {
			return nil, err
		}
	}

	slug := input.Slug
	if slug == "" {
		slug = util.Slugify(input.NameEn)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required when name_en has no latin characters", model.ErrValidation)
	}

	cat := &model.Category{
		ParentID:   input.ParentID,
		Slug:       slug,
		NameRu:     input.NameRu,
		NameUz:     input.NameUz,
		NameEn:     input.NameEn,
		Icon:       input.Icon,
		OrderIndex: input.OrderIndex,
		IsActive:   true,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("category slug %q: %w", slug, model.ErrConflict)
		}
		return nil, err
	}

	uc.invalidate(ctx)
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, fmt.Errorf("category %d: %w", id, model.ErrNotFound)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.ParentID.Set {
		if input.ParentID.Value != nil {
			if err := uc.validateParent(ctx, cat.ID, *input.ParentID.Value); err != nil {
				return nil, err
			}
		}
		cat.ParentID = input.ParentID.Value
	}
	if input.Slug != nil {
		if *input.Slug == "" {
			return nil, fmt.Errorf("%w: slug cannot be empty", model.ErrValidation)
		}
		cat.Slug = *input.Slug
	}
	if input.NameRu != nil {
		if strings.TrimSpace(*input.NameRu) == "" {
			return nil, fmt.Errorf("%w: name_ru cannot be empty", model.ErrValidation)
		}
		cat.NameRu = *input.NameRu
	}
	if input.NameUz != nil {
		cat.NameUz = *input.NameUz
	}
	if input.NameEn != nil {
		cat.NameEn = *input.NameEn
	}
	if input.Icon != nil {
		cat.Icon = *input.Icon
	}
	if input.OrderIndex != nil {
		cat.OrderIndex = *input.OrderIndex
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}

	if err := uc.repo.Update(ctx, cat); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("category slug %q: %w", cat.Slug, model.ErrConflict)
		}
		return nil, err
	}

	uc.invalidate(ctx)
	return cat, nil
}

// DeactivateCategory hides a category. Categories are never hard-deleted and
// children are not cascaded.
func (uc *categoryUseCase) DeactivateCategory(ctx context.Context, id int64) error {
	inactive := false
	_, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: id, IsActive: &inactive})
	return err
}

// validateParent keeps the hierarchy at two levels: the parent must exist and
// be a root, and a category that already has children cannot move under
// another one. Together these also rule out parent cycles.
func (uc *categoryUseCase) validateParent(ctx context.Context, id, parentID int64) error {
	if id != 0 && parentID == id {
		return fmt.Errorf("%w: category cannot be its own parent", model.ErrValidation)
	}

	parent, err := uc.repo.FindByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("%w: parent category %d does not exist", model.ErrValidation, parentID)
	}
	if !parent.IsRoot() {
		return fmt.Errorf("%w: parent category %d is not a root category", model.ErrValidation, parentID)
	}

	if id != 0 {
		n, err := uc.repo.CountChildren(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: category %d has %d children and cannot become a child", model.ErrValidation, id, n)
		}
	}
	return nil
}

func (uc *categoryUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	uc.cache.Invalidate(ctx)
	uc.logger.Debug("category tree cache invalidated", zap.String("reason", "category write"))
}
