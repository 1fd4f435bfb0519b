package repository

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/lib/pq"
)

func id(v int64) *int64 { return &v }

func num(v float64) *float64 { return &v }

func TestBuildWhereSubcategoryWinsOverCategory(t *testing.T) {
	where, args := buildWhere(&dto.ProductFilters{CategoryID: id(1), SubcategoryID: id(2)})
	if where != " WHERE p.is_active = TRUE AND p.category_id = $1" {
		t.Errorf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []interface{}{int64(2)}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildWhereRootCategoryIncludesChildren(t *testing.T) {
	where, args := buildWhere(&dto.ProductFilters{CategoryID: id(1)})
	want := "(p.category_id = $1 OR p.category_id IN (SELECT id FROM categories WHERE parent_id = $1))"
	if !strings.Contains(where, want) {
		t.Errorf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []interface{}{int64(1)}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildWhereSingleValueIsExactMatch(t *testing.T) {
	where, args := buildWhere(&dto.ProductFilters{Brands: []string{"HP"}})
	if !strings.HasSuffix(where, "p.brand = $1") || args[0] != "HP" {
		t.Errorf("where = %q, args = %v", where, args)
	}
}

func TestBuildWhereMultiValueIsSetMembership(t *testing.T) {
	where, args := buildWhere(&dto.ProductFilters{Brands: []string{"HP", "Canon", "HP"}})
	if !strings.HasSuffix(where, "p.brand = ANY($1)") {
		t.Errorf("where = %q", where)
	}
	arr, ok := args[0].(*pq.StringArray)
	if !ok || !reflect.DeepEqual([]string(*arr), []string{"HP", "Canon"}) {
		t.Errorf("args = %#v", args)
	}
}

func TestBuildWherePreOrderIncludesLegacyStatus(t *testing.T) {
	_, args := buildWhere(&dto.ProductFilters{Statuses: []string{"pre_order"}})
	arr, ok := args[0].(*pq.StringArray)
	if !ok || !reflect.DeepEqual([]string(*arr), []string{"pre_order", "on_order"}) {
		t.Errorf("args = %#v", args)
	}

	_, args = buildWhere(&dto.ProductFilters{Statuses: []string{"in_stock"}})
	if args[0] != "in_stock" {
		t.Errorf("args = %#v", args)
	}
}

func TestBuildWhereBothColorsMeansNoFilter(t *testing.T) {
	none, noneArgs := buildWhere(&dto.ProductFilters{})
	both, bothArgs := buildWhere(&dto.ProductFilters{Colors: []string{"color", "bw"}})
	if none != both || len(noneArgs) != len(bothArgs) {
		t.Errorf("none = %q, both = %q", none, both)
	}

	one, args := buildWhere(&dto.ProductFilters{Colors: []string{"bw"}})
	if !strings.HasSuffix(one, "p.color_type = $1") || args[0] != "bw" {
		t.Errorf("where = %q, args = %v", one, args)
	}
}

func TestBuildWhereIsNewOnlyWhenTrue(t *testing.T) {
	where, _ := buildWhere(&dto.ProductFilters{IsNew: false})
	if strings.Contains(where, "is_new") {
		t.Errorf("where = %q", where)
	}
	where, _ = buildWhere(&dto.ProductFilters{IsNew: true})
	if !strings.Contains(where, "p.is_new = TRUE") {
		t.Errorf("where = %q", where)
	}
}

func TestBuildWherePriceAndSpecFacets(t *testing.T) {
	where, args := buildWhere(&dto.ProductFilters{
		PriceMin: num(100),
		PriceMax: num(900),
		Specs:    map[string][]string{"ram": {"16"}, "matrix": {"ips", "oled"}},
		SpecMin:  map[string]float64{"screen": 14},
	})

	for _, frag := range []string{
		"p.price >= $1",
		"p.price <= $2",
		"p.specs ->> $3 = ANY($4)", // matrix sorts before ram
		"p.specs ->> $5 = $6",
		"CASE WHEN (p.specs ->> $7) ~",
		"THEN (p.specs ->> $7)::numeric END >= $8",
	} {
		if !strings.Contains(where, frag) {
			t.Errorf("missing %q in %q", frag, where)
		}
	}
	if len(args) != 8 || args[2] != "matrix" || args[4] != "ram" || args[5] != "16" || args[6] != "screen" || args[7] != float64(14) {
		t.Errorf("args = %#v", args)
	}
}

func TestOrderBy(t *testing.T) {
	tests := map[string]string{
		"":            "p.id DESC",
		"price_asc":   "p.price ASC, p.id DESC",
		"price_desc":  "p.price DESC, p.id DESC",
		"stock-first": "(p.status = 'in_stock') DESC, p.stock DESC, p.id DESC",
	}
	for in, want := range tests {
		if got := orderBy(in); got != want {
			t.Errorf("orderBy(%q) = %q, want %q", in, got, want)
		}
	}
}
