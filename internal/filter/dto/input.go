package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

// CreateFilterInput is the one-shot form of the creation wizard.
type CreateFilterInput struct {
	SubcategoryID    int64                  `json:"subcategory_id"`
	CharacteristicID *int64                 `json:"characteristic_id"`
	SourceType       model.FilterSourceType `json:"source_type"`
	Key              string                 `json:"key"`
	UIType           model.FilterUIType     `json:"type"`
	LabelRu          string                 `json:"label_ru"`
	LabelUz          string                 `json:"label_uz"`
	LabelEn          string                 `json:"label_en"`
	MinValue         *float64               `json:"min_value"`
	MaxValue         *float64               `json:"max_value"`
	IsMultiselect    bool                   `json:"is_multiselect"`
	OrderIndex       int                    `json:"order_index"`
}

// UpdateFilterInput edits presentation only. Source, characteristic and key
// are fixed once created.
type UpdateFilterInput struct {
	ID            int64               `json:"-"`
	UIType        *model.FilterUIType `json:"type"`
	LabelRu       *string             `json:"label_ru"`
	LabelUz       *string             `json:"label_uz"`
	LabelEn       *string             `json:"label_en"`
	MinValue      *float64            `json:"min_value"`
	MaxValue      *float64            `json:"max_value"`
	ClearRange    bool                `json:"clear_range"`
	IsMultiselect *bool               `json:"is_multiselect"`
	OrderIndex    *int                `json:"order_index"`
}
