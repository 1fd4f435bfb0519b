package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
)

type CharacteristicType string

const (
	CharacteristicText    CharacteristicType = "text"
	CharacteristicNumber  CharacteristicType = "number"
	CharacteristicBoolean CharacteristicType = "boolean"
	CharacteristicSelect  CharacteristicType = "select"
)

func (t CharacteristicType) Valid() bool {
	switch t {
	case CharacteristicText, CharacteristicNumber, CharacteristicBoolean, CharacteristicSelect:
		return true
	}
	return false
}

type Characteristic struct {
	BaseModel
	Key          string                `db:"key" json:"key"` // Immutable once created
	Type         CharacteristicType    `db:"type" json:"type"`
	NameRu       string                `db:"name_ru" json:"name_ru"`
	NameUz       string                `db:"name_uz" json:"name_uz"`
	NameEn       string                `db:"name_en" json:"name_en"`
	IsFilterable bool                  `db:"is_filterable" json:"is_filterable"`
	Options      CharacteristicOptions `db:"options" json:"options"`
}

func (c *Characteristic) LocalizedName(l locale.Locale) string {
	return locale.Pick(l, c.NameRu, c.NameUz, c.NameEn)
}

type CharacteristicOption struct {
	Value   string `json:"value"`
	LabelRu string `json:"label_ru"`
	LabelUz string `json:"label_uz"`
	LabelEn string `json:"label_en"`
}

func (o CharacteristicOption) Label(l locale.Locale) string {
	v := locale.Pick(l, o.LabelRu, o.LabelUz, o.LabelEn)
	if v == "" {
		return o.Value
	}
	return v
}

// CharacteristicOptions is stored as a jsonb array. Options survive a type
// change away from select; they are simply ignored.
type CharacteristicOptions []CharacteristicOption

func (o CharacteristicOptions) Find(value string) (CharacteristicOption, bool) {
	for _, opt := range o {
		if opt.Value == value {
			return opt, true
		}
	}
	return CharacteristicOption{}, false
}

func (o CharacteristicOptions) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

func (o *CharacteristicOptions) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*o = CharacteristicOptions{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("characteristic options: unsupported scan type %T", src)
	}
	return json.Unmarshal(data, o)
}
