package dto

import (
	"bytes"
	"encoding/json"
)

type CreateCategoryInput struct {
	ParentID   *int64 `json:"parent_id"`
	Slug       string `json:"slug"`
	NameRu     string `json:"name_ru"`
	NameUz     string `json:"name_uz"`
	NameEn     string `json:"name_en"`
	Icon       string `json:"icon"`
	OrderIndex int    `json:"order_index"`
}

// UpdateCategoryInput is a partial update: nil fields are left untouched.
// id, computed counts and children are not part of the whitelist.
type UpdateCategoryInput struct {
	ID         int64      `json:"-"`
	ParentID   OptionalID `json:"parent_id"`
	Slug       *string    `json:"slug"`
	NameRu     *string    `json:"name_ru"`
	NameUz     *string    `json:"name_uz"`
	NameEn     *string    `json:"name_en"`
	Icon       *string    `json:"icon"`
	OrderIndex *int       `json:"order_index"`
	IsActive   *bool      `json:"is_active"`
}

// OptionalID distinguishes an absent JSON field from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
