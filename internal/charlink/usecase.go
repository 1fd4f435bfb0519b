package charlink

import (
	"context"

	chardto "github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/charlink/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	List(ctx context.Context, categoryID int64, l locale.Locale) (*model.CategoryLinks, error)
	Link(ctx context.Context, categoryID int64, input dto.LinkInput) error
	LinkMany(ctx context.Context, categoryID int64, characteristicIDs []int64) error
	UpdateLink(ctx context.Context, input *dto.UpdateLinkInput) (*model.CategoryCharacteristic, error)
	Unlink(ctx context.Context, categoryID, characteristicID int64) error
	ReplaceAll(ctx context.Context, input *dto.ReplaceLinksInput) (int, error)
	CopyFrom(ctx context.Context, sourceID, targetID int64) (int, error)
	CreateForCategory(ctx context.Context, categoryID int64, ch *chardto.CreateCharacteristicInput, link dto.LinkInput) (*model.Characteristic, error)
}
