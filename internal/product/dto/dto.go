package dto

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/util"
)

const (
	DefaultLimit = 24
	MaxLimit     = 100
)

// Sort policies accepted by the listing.
const (
	SortDefault    = ""
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortStockFirst = "stock-first"
)

type ProductFilters struct {
	CategoryID    *int64
	SubcategoryID *int64
	Brands        []string
	Statuses      []string
	Colors        []string
	IsNew         bool
	PriceMin      *float64
	PriceMax      *float64

	// Characteristic facets keyed by characteristic key.
	Specs   map[string][]string
	SpecMin map[string]float64
	SpecMax map[string]float64

	// Extra holds query keys that are not column facets. The use case decides
	// which of them are characteristic facets.
	Extra map[string][]string

	Sort  string
	Page  int
	Limit int
}

var reserved = map[string]bool{
	"category": true, "subcategory": true, "brand": true, "status": true,
	"color": true, "is_new": true, "price_min": true, "price_max": true,
	"sort": true, "page": true, "limit": true, "locale": true, "key_specs": true,
}

// ParseFilters reads a listing query string. Every facet accepts
// comma-separated values and may repeat.
func ParseFilters(q url.Values) (*ProductFilters, error) {
	f := &ProductFilters{
		Brands:   values(q, "brand"),
		Statuses: values(q, "status"),
		Colors:   values(q, "color"),
		IsNew:    q.Get("is_new") == "true" || q.Get("is_new") == "1",
		Sort:     q.Get("sort"),
		Extra:    map[string][]string{},
	}

	var err error
	if f.CategoryID, err = optionalID(q, "category"); err != nil {
		return nil, err
	}
	if f.SubcategoryID, err = optionalID(q, "subcategory"); err != nil {
		return nil, err
	}
	if f.PriceMin, err = optionalFloat(q, "price_min"); err != nil {
		return nil, err
	}
	if f.PriceMax, err = optionalFloat(q, "price_max"); err != nil {
		return nil, err
	}

	switch f.Sort {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortStockFirst:
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", model.ErrValidation, f.Sort)
	}

	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f.Normalize()

	for key := range q {
		if reserved[key] {
			continue
		}
		if vals := values(q, key); len(vals) > 0 {
			f.Extra[key] = vals
		}
	}
	return f, nil
}

// Normalize clamps paging to its defaults and bounds.
func (f *ProductFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

func (f *ProductFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}

func values(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		out = append(out, util.SplitCSV(raw)...)
	}
	return out
}

func optionalID(q url.Values, key string) (*int64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: invalid %s %q", model.ErrValidation, key, raw)
	}
	return &id, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, ok := model.ParseNumber(raw)
	if !ok {
		return nil, fmt.Errorf("%w: invalid %s %q", model.ErrValidation, key, raw)
	}
	return &v, nil
}
