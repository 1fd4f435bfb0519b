package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

type CharacteristicFilters struct {
	Type       model.CharacteristicType
	Filterable *bool
	Search     string
}
