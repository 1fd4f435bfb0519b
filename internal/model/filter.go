package model

import "github.com/fekuna/omnipos-catalog-service/internal/locale"

type FilterSourceType string

const (
	FilterSourceCharacteristic FilterSourceType = "characteristic"
	FilterSourceCustom         FilterSourceType = "custom"
)

type FilterUIType string

const (
	FilterUISelect   FilterUIType = "select"
	FilterUIRange    FilterUIType = "range"
	FilterUICheckbox FilterUIType = "checkbox"
)

func (t FilterUIType) Valid() bool {
	switch t {
	case FilterUISelect, FilterUIRange, FilterUICheckbox:
		return true
	}
	return false
}

// SuggestUIType is the default facet widget for a characteristic type.
func SuggestUIType(t CharacteristicType) FilterUIType {
	switch t {
	case CharacteristicNumber:
		return FilterUIRange
	case CharacteristicBoolean:
		return FilterUICheckbox
	default:
		return FilterUISelect
	}
}

type FilterDefinition struct {
	BaseModel
	SubcategoryID    int64            `db:"subcategory_id" json:"subcategory_id"`
	CharacteristicID *int64           `db:"characteristic_id" json:"characteristic_id"`
	SourceType       FilterSourceType `db:"source_type" json:"source_type"`
	Key              *string          `db:"key" json:"key"` // Unique system key, custom filters only
	UIType           FilterUIType     `db:"ui_type" json:"type"`
	LabelRu          string           `db:"label_ru" json:"label_ru"`
	LabelUz          string           `db:"label_uz" json:"label_uz"`
	LabelEn          string           `db:"label_en" json:"label_en"`
	MinValue         *float64         `db:"min_value" json:"min_value"`
	MaxValue         *float64         `db:"max_value" json:"max_value"`
	IsMultiselect    bool             `db:"is_multiselect" json:"is_multiselect"`
	OrderIndex       int              `db:"order_index" json:"order_index"`

	// Joined from characteristics when source_type = characteristic.
	CharacteristicKey *string `db:"characteristic_key" json:"characteristic_key,omitempty"`

	// Resolved for storefront reads.
	Label string `db:"-" json:"label,omitempty"`
	Param string `db:"-" json:"param,omitempty"`
}

// QueryKey is the listing parameter this facet is driven by.
func (f *FilterDefinition) QueryKey() string {
	if f.SourceType == FilterSourceCharacteristic && f.CharacteristicKey != nil {
		return *f.CharacteristicKey
	}
	if f.Key != nil {
		return *f.Key
	}
	return ""
}

func (f *FilterDefinition) LocalizedLabel(l locale.Locale) string {
	return locale.Pick(l, f.LabelRu, f.LabelUz, f.LabelEn)
}
