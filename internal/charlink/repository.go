package charlink

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository writes links and keeps categories.characteristics_version moving
// forward on every change to a category's link set.
type Repository interface {
	List(ctx context.Context, categoryID int64) ([]model.LinkedCharacteristic, error)
	Version(ctx context.Context, categoryID int64) (int, error)
	FindLink(ctx context.Context, categoryID, characteristicID int64) (*model.CategoryCharacteristic, error)
	// Link inserts the pair unless it exists and reports whether a row was added.
	Link(ctx context.Context, link model.CategoryCharacteristic) (bool, error)
	UpdateLink(ctx context.Context, link model.CategoryCharacteristic) error
	Unlink(ctx context.Context, categoryID, characteristicID int64) error
	// ReplaceAll syncs the link set in one transaction and returns the new version.
	ReplaceAll(ctx context.Context, categoryID int64, expectedVersion int, links []model.CategoryCharacteristic) (int, error)
	CopyFrom(ctx context.Context, sourceID, targetID int64) (int, error)
}
