package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/characteristic"
	"github.com/fekuna/omnipos-catalog-service/internal/filter"
	"github.com/fekuna/omnipos-catalog-service/internal/filter/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/filter/wizard"
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type filterUseCase struct {
	repo            filter.Repository
	characteristics characteristic.UseCase
	logger          logger.ZapLogger
}

func NewFilterUseCase(repo filter.Repository, chars characteristic.UseCase, log logger.ZapLogger) filter.UseCase {
	return &filterUseCase{
		repo:            repo,
		characteristics: chars,
		logger:          log,
	}
}

func (uc *filterUseCase) SuggestDraft(ctx context.Context, subcategoryID, characteristicID int64) (*wizard.Draft, error) {
	w := wizard.New(subcategoryID)
	if err := uc.chooseCharacteristic(ctx, w, characteristicID); err != nil {
		return nil, err
	}
	d := w.Draft()
	return &d, nil
}

// CreateFilter replays the wizard with the submitted values so the same
// guards apply to one-shot requests.
func (uc *filterUseCase) CreateFilter(ctx context.Context, input *dto.CreateFilterInput) (*model.FilterDefinition, error) {
	if input.SubcategoryID <= 0 {
		return nil, fmt.Errorf("%w: subcategory_id is required", model.ErrValidation)
	}

	w := wizard.New(input.SubcategoryID)
	switch input.SourceType {
	case model.FilterSourceCharacteristic:
		if input.CharacteristicID == nil {
			return nil, fmt.Errorf("%w: choose a characteristic", model.ErrValidation)
		}
		if err := uc.chooseCharacteristic(ctx, w, *input.CharacteristicID); err != nil {
			return nil, err
		}
	case model.FilterSourceCustom:
		if err := w.ChooseCustom(input.Key); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown source_type %q", model.ErrValidation, input.SourceType)
	}

	if err := w.Next(); err != nil {
		return nil, err
	}
	if input.UIType != "" {
		if err := w.SetUIType(input.UIType); err != nil {
			return nil, err
		}
	}
	if err := w.Next(); err != nil {
		return nil, err
	}
	if err := w.Configure(wizard.Config{
		LabelRu:       input.LabelRu,
		LabelUz:       input.LabelUz,
		LabelEn:       input.LabelEn,
		MinValue:      input.MinValue,
		MaxValue:      input.MaxValue,
		IsMultiselect: input.IsMultiselect,
		OrderIndex:    input.OrderIndex,
	}); err != nil {
		return nil, err
	}
	draft, err := w.Submit()
	if err != nil {
		return nil, err
	}

	f := draft.Definition()
	if err := uc.repo.Create(ctx, f); err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return nil, fmt.Errorf("filter key %q: %w", draft.Key, model.ErrConflict)
		case postgres.IsForeignKeyViolation(err):
			return nil, fmt.Errorf("%w: subcategory %d does not exist", model.ErrValidation, input.SubcategoryID)
		}
		return nil, err
	}
	uc.logger.Info("filter created",
		zap.Int64("filter_id", f.ID),
		zap.Int64("subcategory_id", f.SubcategoryID),
		zap.String("source_type", string(f.SourceType)),
	)
	return f, nil
}

func (uc *filterUseCase) chooseCharacteristic(ctx context.Context, w *wizard.Wizard, id int64) error {
	ch, err := uc.characteristics.GetCharacteristic(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%w: characteristic %d does not exist", model.ErrValidation, id)
		}
		return err
	}
	return w.ChooseCharacteristic(ch)
}

func (uc *filterUseCase) ListFilters(ctx context.Context, subcategoryID int64, l locale.Locale) ([]model.FilterDefinition, error) {
	filters, err := uc.repo.FindBySubcategory(ctx, subcategoryID)
	if err != nil {
		return nil, err
	}
	for i := range filters {
		filters[i].Label = filters[i].LocalizedLabel(l)
		filters[i].Param = filters[i].QueryKey()
	}
	return filters, nil
}

func (uc *filterUseCase) UpdateFilter(ctx context.Context, input *dto.UpdateFilterInput) (*model.FilterDefinition, error) {
	f, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("filter %d: %w", input.ID, model.ErrNotFound)
	}

	if input.UIType != nil {
		if !input.UIType.Valid() {
			return nil, fmt.Errorf("%w: unknown filter type %q", model.ErrValidation, *input.UIType)
		}
		f.UIType = *input.UIType
	}
	if input.LabelRu != nil {
		if strings.TrimSpace(*input.LabelRu) == "" {
			return nil, fmt.Errorf("%w: label_ru cannot be empty", model.ErrValidation)
		}
		f.LabelRu = *input.LabelRu
	}
	if input.LabelUz != nil {
		f.LabelUz = *input.LabelUz
	}
	if input.LabelEn != nil {
		f.LabelEn = *input.LabelEn
	}
	if input.ClearRange {
		f.MinValue, f.MaxValue = nil, nil
	}
	if input.MinValue != nil {
		f.MinValue = input.MinValue
	}
	if input.MaxValue != nil {
		f.MaxValue = input.MaxValue
	}
	if input.IsMultiselect != nil {
		f.IsMultiselect = *input.IsMultiselect
	}
	if input.OrderIndex != nil {
		f.OrderIndex = *input.OrderIndex
	}

	if f.UIType != model.FilterUIRange {
		f.MinValue, f.MaxValue = nil, nil
	}
	if f.UIType != model.FilterUISelect {
		f.IsMultiselect = false
	}
	if err := wizard.ValidateSettings(f.UIType, f.MinValue, f.MaxValue); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (uc *filterUseCase) DeleteFilter(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
