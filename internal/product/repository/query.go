package repository

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/lib/pq"
)

// numericText matches spec values that can be compared as numbers.
const numericText = `'^-?[0-9]+(\.[0-9]+)?$'`

type listQuery struct {
	where []string
	args  []interface{}
}

func (q *listQuery) bind(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// match adds an exact match for one value and set membership for several.
func (q *listQuery) match(expr string, vals []string) {
	switch len(vals) {
	case 0:
	case 1:
		q.where = append(q.where, fmt.Sprintf("%s = %s", expr, q.bind(vals[0])))
	default:
		q.where = append(q.where, fmt.Sprintf("%s = ANY(%s)", expr, q.bind(pq.Array(vals))))
	}
}

// buildWhere renders the listing filters into a WHERE clause and its
// positional arguments.
func buildWhere(f *dto.ProductFilters) (string, []interface{}) {
	q := &listQuery{where: []string{"p.is_active = TRUE"}}

	switch {
	case f.SubcategoryID != nil:
		q.where = append(q.where, "p.category_id = "+q.bind(*f.SubcategoryID))
	case f.CategoryID != nil:
		ph := q.bind(*f.CategoryID)
		q.where = append(q.where, fmt.Sprintf(
			"(p.category_id = %s OR p.category_id IN (SELECT id FROM categories WHERE parent_id = %s))", ph, ph))
	}

	q.match("p.brand", f.Brands)
	q.match("p.status", expandStatuses(f.Statuses))
	q.match("p.color_type", effectiveColors(f.Colors))

	if f.IsNew {
		q.where = append(q.where, "p.is_new = TRUE")
	}
	if f.PriceMin != nil {
		q.where = append(q.where, "p.price >= "+q.bind(*f.PriceMin))
	}
	if f.PriceMax != nil {
		q.where = append(q.where, "p.price <= "+q.bind(*f.PriceMax))
	}

	for _, key := range sortedKeys(f.Specs) {
		q.match(fmt.Sprintf("p.specs ->> %s", q.bind(key)), f.Specs[key])
	}
	for _, key := range sortedFloatKeys(f.SpecMin) {
		q.where = append(q.where, numericSpec(q, key, ">=", f.SpecMin[key]))
	}
	for _, key := range sortedFloatKeys(f.SpecMax) {
		q.where = append(q.where, numericSpec(q, key, "<=", f.SpecMax[key]))
	}

	return " WHERE " + strings.Join(q.where, " AND "), q.args
}

// numericSpec compares a spec value as a number. Non-numeric values yield
// NULL and never match.
func numericSpec(q *listQuery, key, op string, bound float64) string {
	k := q.bind(key)
	return fmt.Sprintf("CASE WHEN (p.specs ->> %s) ~ %s THEN (p.specs ->> %s)::numeric END %s %s",
		k, numericText, k, op, q.bind(bound))
}

func orderBy(sortBy string) string {
	switch sortBy {
	case dto.SortPriceAsc:
		return "p.price ASC, p.id DESC"
	case dto.SortPriceDesc:
		return "p.price DESC, p.id DESC"
	case dto.SortStockFirst:
		return fmt.Sprintf("(p.status = '%s') DESC, p.stock DESC, p.id DESC", model.StatusInStock)
	default:
		return "p.id DESC"
	}
}

// expandStatuses adds the legacy on_order status whenever pre_order is asked for.
func expandStatuses(statuses []string) []string {
	out := dedupe(statuses)
	var pre, legacy bool
	for _, s := range out {
		pre = pre || s == string(model.StatusPreOrder)
		legacy = legacy || s == string(model.StatusOnOrder)
	}
	if pre && !legacy {
		out = append(out, string(model.StatusOnOrder))
	}
	return out
}

// effectiveColors returns nil when both color and bw are requested: asking for
// every state is the same as not filtering.
func effectiveColors(colors []string) []string {
	out := dedupe(colors)
	var color, bw bool
	for _, c := range out {
		color = color || c == model.ColorTypeColor
		bw = bw || c == model.ColorTypeBW
	}
	if color && bw {
		return nil
	}
	return out
}

func dedupe(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedFloatKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
