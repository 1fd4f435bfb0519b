package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/characteristic"
	chardto "github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/charlink"
	"github.com/fekuna/omnipos-catalog-service/internal/charlink/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// linkFanOut caps concurrent inserts issued by LinkMany.
const linkFanOut = 8

type linkUseCase struct {
	repo            charlink.Repository
	characteristics characteristic.UseCase
	cache           category.TreeCache
	logger          logger.ZapLogger
}

// NewLinkUseCase wires the link use case. cache may be nil.
func NewLinkUseCase(repo charlink.Repository, chars characteristic.UseCase, cache category.TreeCache, log logger.ZapLogger) charlink.UseCase {
	return &linkUseCase{
		repo:            repo,
		characteristics: chars,
		cache:           cache,
		logger:          log,
	}
}

func (uc *linkUseCase) List(ctx context.Context, categoryID int64, l locale.Locale) (*model.CategoryLinks, error) {
	version, err := uc.repo.Version(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	items, err := uc.repo.List(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list links of category %d: %w", categoryID, err)
	}
	for i := range items {
		items[i].Name = items[i].LocalizedName(l)
	}
	return &model.CategoryLinks{CategoryID: categoryID, Version: version, Items: items}, nil
}

func (uc *linkUseCase) Link(ctx context.Context, categoryID int64, input dto.LinkInput) error {
	if input.CharacteristicID <= 0 {
		return fmt.Errorf("%w: characteristic_id is required", model.ErrValidation)
	}
	if err := uc.link(ctx, categoryID, input); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// LinkMany links every id with default metadata. Calls run concurrently and
// are not atomic: links made before a failure stay in place.
func (uc *linkUseCase) LinkMany(ctx context.Context, categoryID int64, characteristicIDs []int64) error {
	for _, id := range characteristicIDs {
		if id <= 0 {
			return fmt.Errorf("%w: invalid characteristic id %d", model.ErrValidation, id)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(linkFanOut)
	for _, id := range characteristicIDs {
		id := id
		g.Go(func() error {
			return uc.link(gctx, categoryID, dto.LinkInput{CharacteristicID: id})
		})
	}
	err := g.Wait()
	uc.invalidate(ctx)
	return err
}

func (uc *linkUseCase) link(ctx context.Context, categoryID int64, input dto.LinkInput) error {
	added, err := uc.repo.Link(ctx, model.CategoryCharacteristic{
		CategoryID:       categoryID,
		CharacteristicID: input.CharacteristicID,
		IsRequired:       input.IsRequired,
		ShowInKeySpecs:   input.ShowInKeySpecs,
		OrderIndex:       input.OrderIndex,
	})
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d or characteristic %d does not exist",
				model.ErrValidation, categoryID, input.CharacteristicID)
		}
		return err
	}
	if !added {
		uc.logger.Debug("link already exists",
			zap.Int64("category_id", categoryID), zap.Int64("characteristic_id", input.CharacteristicID))
	}
	return nil
}

func (uc *linkUseCase) UpdateLink(ctx context.Context, input *dto.UpdateLinkInput) (*model.CategoryCharacteristic, error) {
	link, err := uc.repo.FindLink(ctx, input.CategoryID, input.CharacteristicID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("link %d/%d: %w", input.CategoryID, input.CharacteristicID, model.ErrNotFound)
	}

	if input.IsRequired != nil {
		link.IsRequired = *input.IsRequired
	}
	if input.ShowInKeySpecs != nil {
		link.ShowInKeySpecs = *input.ShowInKeySpecs
	}
	if input.OrderIndex != nil {
		link.OrderIndex = *input.OrderIndex
	}

	if err := uc.repo.UpdateLink(ctx, *link); err != nil {
		return nil, err
	}
	return link, nil
}

func (uc *linkUseCase) Unlink(ctx context.Context, categoryID, characteristicID int64) error {
	if err := uc.repo.Unlink(ctx, categoryID, characteristicID); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *linkUseCase) ReplaceAll(ctx context.Context, input *dto.ReplaceLinksInput) (int, error) {
	if input.Version == nil {
		return 0, fmt.Errorf("%w: version is required", model.ErrValidation)
	}

	links := make([]model.CategoryCharacteristic, 0, len(input.Items))
	seen := make(map[int64]struct{}, len(input.Items))
	for _, it := range input.Items {
		if it.CharacteristicID <= 0 {
			return 0, fmt.Errorf("%w: invalid characteristic id %d", model.ErrValidation, it.CharacteristicID)
		}
		if _, dup := seen[it.CharacteristicID]; dup {
			return 0, fmt.Errorf("%w: characteristic %d listed twice", model.ErrValidation, it.CharacteristicID)
		}
		seen[it.CharacteristicID] = struct{}{}
		links = append(links, model.CategoryCharacteristic{
			CategoryID:       input.CategoryID,
			CharacteristicID: it.CharacteristicID,
			IsRequired:       it.IsRequired,
			ShowInKeySpecs:   it.ShowInKeySpecs,
			OrderIndex:       it.OrderIndex,
		})
	}

	version, err := uc.repo.ReplaceAll(ctx, input.CategoryID, *input.Version, links)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("category characteristics replaced",
		zap.Int64("category_id", input.CategoryID),
		zap.Int("links", len(links)),
		zap.Int("version", version),
	)
	uc.invalidate(ctx)
	return version, nil
}

func (uc *linkUseCase) CopyFrom(ctx context.Context, sourceID, targetID int64) (int, error) {
	if sourceID <= 0 || sourceID == targetID {
		return 0, fmt.Errorf("%w: source category must differ from target", model.ErrValidation)
	}
	if _, err := uc.repo.Version(ctx, sourceID); err != nil {
		return 0, err
	}
	if _, err := uc.repo.Version(ctx, targetID); err != nil {
		return 0, err
	}

	n, err := uc.repo.CopyFrom(ctx, sourceID, targetID)
	if err != nil {
		return 0, fmt.Errorf("copy links %d -> %d: %w: %w", sourceID, targetID, model.ErrSaveFailed, err)
	}
	if n > 0 {
		uc.invalidate(ctx)
	}
	return n, nil
}

// CreateForCategory creates a characteristic and then links it. The two steps
// are independent: if linking fails the characteristic remains unlinked and
// the caller may retry the link alone.
func (uc *linkUseCase) CreateForCategory(ctx context.Context, categoryID int64, input *chardto.CreateCharacteristicInput, link dto.LinkInput) (*model.Characteristic, error) {
	ch, err := uc.characteristics.CreateCharacteristic(ctx, input)
	if err != nil {
		return nil, err
	}
	link.CharacteristicID = ch.ID
	if err := uc.Link(ctx, categoryID, link); err != nil {
		uc.logger.Warn("characteristic created but not linked",
			zap.Int64("characteristic_id", ch.ID), zap.Int64("category_id", categoryID), zap.Error(err))
		return ch, err
	}
	return ch, nil
}

func (uc *linkUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}
