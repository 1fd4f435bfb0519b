package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

type CreateCharacteristicInput struct {
	Key          string                      `json:"key"`
	Type         model.CharacteristicType    `json:"type"`
	NameRu       string                      `json:"name_ru"`
	NameUz       string                      `json:"name_uz"`
	NameEn       string                      `json:"name_en"`
	IsFilterable bool                        `json:"is_filterable"`
	Options      model.CharacteristicOptions `json:"options"`
}

// UpdateCharacteristicInput has no key: keys never change after creation.
type UpdateCharacteristicInput struct {
	ID           int64                        `json:"-"`
	Type         *model.CharacteristicType    `json:"type"`
	NameRu       *string                      `json:"name_ru"`
	NameUz       *string                      `json:"name_uz"`
	NameEn       *string                      `json:"name_en"`
	IsFilterable *bool                        `json:"is_filterable"`
	Options      *model.CharacteristicOptions `json:"options"`
}
