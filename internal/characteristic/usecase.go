package characteristic

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateCharacteristic(ctx context.Context, input *dto.CreateCharacteristicInput) (*model.Characteristic, error)
	GetCharacteristic(ctx context.Context, id int64) (*model.Characteristic, error)
	ListCharacteristics(ctx context.Context, filters *dto.CharacteristicFilters) ([]model.Characteristic, error)
	UpdateCharacteristic(ctx context.Context, input *dto.UpdateCharacteristicInput) (*model.Characteristic, error)
	DeleteCharacteristic(ctx context.Context, id int64) error
	SuggestKey(nameEn string) string
}
