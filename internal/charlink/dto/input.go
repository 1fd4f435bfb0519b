package dto

import (
	chardto "github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
)

type LinkInput struct {
	CharacteristicID int64 `json:"characteristic_id"`
	IsRequired       bool  `json:"is_required"`
	ShowInKeySpecs   bool  `json:"show_in_key_specs"`
	OrderIndex       int   `json:"order_index"`
}

// LinkRequest links one existing characteristic with metadata, several with
// default metadata, or creates a new characteristic and links it.
type LinkRequest struct {
	LinkInput
	CharacteristicIDs []int64                            `json:"characteristic_ids"`
	Characteristic    *chardto.CreateCharacteristicInput `json:"characteristic"`
}

type UpdateLinkInput struct {
	CategoryID       int64 `json:"-"`
	CharacteristicID int64 `json:"-"`
	IsRequired       *bool `json:"is_required"`
	ShowInKeySpecs   *bool `json:"show_in_key_specs"`
	OrderIndex       *int  `json:"order_index"`
}

type ReplaceLinksInput struct {
	CategoryID int64       `json:"-"`
	Version    *int        `json:"version"`
	Items      []LinkInput `json:"items"`
}

type CopyLinksInput struct {
	SourceCategoryID int64 `json:"sourceCategoryId"`
}
