package filter

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/filter/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/filter/wizard"
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	// SuggestDraft runs the source step for a characteristic and returns the
	// pre-seeded draft.
	SuggestDraft(ctx context.Context, subcategoryID, characteristicID int64) (*wizard.Draft, error)
	CreateFilter(ctx context.Context, input *dto.CreateFilterInput) (*model.FilterDefinition, error)
	ListFilters(ctx context.Context, subcategoryID int64, l locale.Locale) ([]model.FilterDefinition, error)
	UpdateFilter(ctx context.Context, input *dto.UpdateFilterInput) (*model.FilterDefinition, error)
	DeleteFilter(ctx context.Context, id int64) error
}
