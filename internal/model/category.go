package model

import "github.com/fekuna/omnipos-catalog-service/internal/locale"

type Category struct {
	BaseModel
	ParentID               *int64 `db:"parent_id" json:"parent_id"` // Nullable, root when nil
	Slug                   string `db:"slug" json:"slug"`
	NameRu                 string `db:"name_ru" json:"name_ru"`
	NameUz                 string `db:"name_uz" json:"name_uz"`
	NameEn                 string `db:"name_en" json:"name_en"`
	Icon                   string `db:"icon" json:"icon"`
	OrderIndex             int    `db:"order_index" json:"order_index"`
	IsActive               bool   `db:"is_active" json:"is_active"`
	CharacteristicsVersion int    `db:"characteristics_version" json:"characteristics_version"`
}

func (c *Category) IsRoot() bool { return c.ParentID == nil }

func (c *Category) LocalizedName(l locale.Locale) string {
	return locale.Pick(l, c.NameRu, c.NameUz, c.NameEn)
}

// CategoryCounts is a category row joined with its direct product and
// characteristic counts.
type CategoryCounts struct {
	Category
	DirectProductCount  int `db:"direct_product_count"`
	CharacteristicCount int `db:"characteristic_count"`
}

// CategoryNode is the public tree view: one resolved name, aggregated counts.
type CategoryNode struct {
	ID                  int64           `json:"id"`
	ParentID            *int64          `json:"parent_id"`
	Name                string          `json:"name"`
	Slug                string          `json:"slug"`
	Icon                string          `json:"icon"`
	OrderIndex          int             `json:"order_index"`
	ProductCount        int             `json:"product_count"`
	CharacteristicCount int             `json:"characteristic_count"`
	Children            []*CategoryNode `json:"children"`
}
