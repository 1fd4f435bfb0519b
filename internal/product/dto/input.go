package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

type SetSpecsInput struct {
	ProductID int64       `json:"-"`
	Specs     model.Specs `json:"specs"`
}

// ProductSavedEvent is published by the product editor whenever a product is
// saved. Specs carry the full map, not a patch.
type ProductSavedEvent struct {
	ProductID int64       `json:"product_id"`
	Specs     model.Specs `json:"specs"`
}
