package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/characteristic"
	"github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/util"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type characteristicUseCase struct {
	repo   characteristic.Repository
	logger logger.ZapLogger
}

func NewCharacteristicUseCase(repo characteristic.Repository, log logger.ZapLogger) characteristic.UseCase {
	return &characteristicUseCase{
		repo:   repo,
		logger: log,
	}
}

// SuggestKey derives a key from an English name: "Screen Size" -> "screen_size".
func (uc *characteristicUseCase) SuggestKey(nameEn string) string {
	return util.KeyFromName(nameEn)
}

func (uc *characteristicUseCase) CreateCharacteristic(ctx context.Context, input *dto.CreateCharacteristicInput) (*model.Characteristic, error) {
	if strings.TrimSpace(input.NameRu) == "" {
		return nil, fmt.Errorf("%w: name_ru is required", model.ErrValidation)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown characteristic type %q", model.ErrValidation, input.Type)
	}

	key := strings.TrimSpace(input.Key)
	if key == "" {
		key = uc.SuggestKey(input.NameEn)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: key is required when name_en has no latin characters", model.ErrValidation)
	}
	if err := validateOptions(input.Options); err != nil {
		return nil, err
	}

	c := &model.Characteristic{
		Key:          key,
		Type:         input.Type,
		NameRu:       input.NameRu,
		NameUz:       input.NameUz,
		NameEn:       input.NameEn,
		IsFilterable: input.IsFilterable,
		Options:      input.Options,
	}
	if c.Options == nil {
		c.Options = model.CharacteristicOptions{}
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, fmt.Errorf("characteristic key %q: %w", key, model.ErrConflict)
		}
		return nil, err
	}
	return c, nil
}

func (uc *characteristicUseCase) GetCharacteristic(ctx context.Context, id int64) (*model.Characteristic, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("characteristic %d: %w", id, model.ErrNotFound)
	}
	return c, nil
}

func (uc *characteristicUseCase) ListCharacteristics(ctx context.Context, filters *dto.CharacteristicFilters) ([]model.Characteristic, error) {
	if filters.Type != "" && !filters.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown characteristic type %q", model.ErrValidation, filters.Type)
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *characteristicUseCase) UpdateCharacteristic(ctx context.Context, input *dto.UpdateCharacteristicInput) (*model.Characteristic, error) {
	c, err := uc.GetCharacteristic(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown characteristic type %q", model.ErrValidation, *input.Type)
		}
		// options stay in place when moving away from select
		c.Type = *input.Type
	}
	if input.NameRu != nil {
		if strings.TrimSpace(*input.NameRu) == "" {
			return nil, fmt.Errorf("%w: name_ru cannot be empty", model.ErrValidation)
		}
		c.NameRu = *input.NameRu
	}
	if input.NameUz != nil {
		c.NameUz = *input.NameUz
	}
	if input.NameEn != nil {
		c.NameEn = *input.NameEn
	}
	if input.IsFilterable != nil {
		c.IsFilterable = *input.IsFilterable
	}
	if input.Options != nil {
		if err := validateOptions(*input.Options); err != nil {
			return nil, err
		}
		c.Options = *input.Options
	}

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *characteristicUseCase) DeleteCharacteristic(ctx context.Context, id int64) error {
	n, err := uc.repo.CountLinks(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("characteristic %d is linked to %d categories: %w", id, n, model.ErrConflict)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("characteristic %d is still referenced: %w", id, model.ErrConflict)
		}
		return err
	}
	uc.logger.Info("characteristic deleted", zap.Int64("characteristic_id", id))
	return nil
}

func validateOptions(opts model.CharacteristicOptions) error {
	seen := make(map[string]struct{}, len(opts))
	for i, o := range opts {
		if strings.TrimSpace(o.Value) == "" {
			return fmt.Errorf("%w: option %d has an empty value", model.ErrValidation, i)
		}
		if _, dup := seen[o.Value]; dup {
			return fmt.Errorf("%w: duplicate option value %q", model.ErrValidation, o.Value)
		}
		seen[o.Value] = struct{}{}
	}
	return nil
}
