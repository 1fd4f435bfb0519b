package stats

import "context"

// Counter is one dashboard tile.
type Counter string

const (
	CounterCategories      Counter = "categories"
	CounterCharacteristics Counter = "characteristics"
	CounterProducts        Counter = "products"
	CounterFilters         Counter = "filters"
)

var Counters = []Counter{CounterCategories, CounterCharacteristics, CounterProducts, CounterFilters}

type Dashboard struct {
	Categories      int `json:"categories"`
	Characteristics int `json:"characteristics"`
	Products        int `json:"products"`
	Filters         int `json:"filters"`
}

type Repository interface {
	Count(ctx context.Context, c Counter) (int, error)
}

type UseCase interface {
	// Dashboard never fails. A counter that cannot be read is reported as zero.
	Dashboard(ctx context.Context) *Dashboard
}
