package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
)

type fakeRepo struct {
	products map[int64]*model.Product
	types    map[string]model.CharacteristicType
	lastList *dto.ProductFilters
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	r.lastList = f
	return []model.Product{}, 0, nil
}

func (r *fakeRepo) UpdateSpecs(_ context.Context, id int64, specs model.Specs) error {
	p, ok := r.products[id]
	if !ok {
		return model.ErrNotFound
	}
	p.Specs = specs
	return nil
}

func (r *fakeRepo) CharacteristicTypes(context.Context) (map[string]model.CharacteristicType, error) {
	return r.types, nil
}

type fakeSchema map[int64][]model.LinkedCharacteristic

func (s fakeSchema) List(_ context.Context, categoryID int64) ([]model.LinkedCharacteristic, error) {
	return s[categoryID], nil
}

func newUC() (*fakeRepo, *productUseCase) {
	p := &model.Product{CategoryID: 2, Name: "Omen", Specs: model.Specs{"ram": model.NumberValue(16)}}
	p.ID = 5
	repo := &fakeRepo{
		products: map[int64]*model.Product{5: p},
		types: map[string]model.CharacteristicType{
			"ram":         model.CharacteristicNumber,
			"screen":      model.CharacteristicNumber,
			"matrix":      model.CharacteristicSelect,
			"touchscreen": model.CharacteristicBoolean,
		},
	}
	schema := fakeSchema{2: {
		linked("ram", model.CharacteristicNumber, true, 1),
		linked("screen", model.CharacteristicNumber, true, 2),
	}}
	return repo, NewProductUseCase(repo, schema, logger.NewNop()).(*productUseCase)
}

func TestListProductsResolvesSpecFacets(t *testing.T) {
	repo, uc := newUC()
	f := &dto.ProductFilters{Extra: map[string][]string{
		"matrix":     {"ips", "oled"},
		"screen_min": {"14"},
		"screen_max": {"16.5"},
		"utm_source": {"ads"},
	}}
	if _, _, err := uc.ListProducts(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	got := repo.lastList
	if len(got.Specs) != 1 || len(got.Specs["matrix"]) != 2 {
		t.Errorf("specs = %v", got.Specs)
	}
	if got.SpecMin["screen"] != 14 || got.SpecMax["screen"] != 16.5 {
		t.Errorf("min = %v, max = %v", got.SpecMin, got.SpecMax)
	}
	if got.Limit != dto.DefaultLimit || got.Page != 1 {
		t.Errorf("paging = %d/%d", got.Page, got.Limit)
	}
}

func TestListProductsBooleanFacetMatchesOnlyTrue(t *testing.T) {
	tests := []struct {
		vals []string
		want []string
	}{
		{[]string{"true"}, []string{"true"}},
		{[]string{"1"}, []string{"true"}},
		{[]string{"false", "true"}, []string{"true"}},
		{[]string{"false"}, nil},
		{[]string{"maybe"}, nil},
	}
	for _, tt := range tests {
		repo, uc := newUC()
		f := &dto.ProductFilters{Extra: map[string][]string{"touchscreen": tt.vals}}
		if _, _, err := uc.ListProducts(context.Background(), f); err != nil {
			t.Fatal(err)
		}
		got, ok := repo.lastList.Specs["touchscreen"]
		if tt.want == nil {
			if ok {
				t.Errorf("%v: facet = %v, want none", tt.vals, got)
			}
			continue
		}
		if len(got) != 1 || got[0] != "true" {
			t.Errorf("%v: facet = %v, want [true]", tt.vals, got)
		}
	}
}

func TestListProductsRejectsBadBound(t *testing.T) {
	_, uc := newUC()
	for _, bound := range []string{"big", "NaN", "-Inf"} {
		f := &dto.ProductFilters{Extra: map[string][]string{"screen_min": {bound}}}
		if _, _, err := uc.ListProducts(context.Background(), f); !errors.Is(err, model.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", bound, err)
		}
	}
}

func TestSetSpecsReplacesWholeMap(t *testing.T) {
	repo, uc := newUC()
	ctx := context.Background()

	out, err := uc.SetSpecs(ctx, 5, model.Specs{"screen": model.TextValue("15.6")})
	if err != nil {
		t.Fatalf("SetSpecs: %v", err)
	}
	if _, kept := repo.products[5].Specs["ram"]; kept {
		t.Error("old key survived a full replace")
	}
	if out["screen"] != model.NumberValue(15.6) {
		t.Errorf("screen = %+v", out["screen"])
	}

	if _, err := uc.SetSpecs(ctx, 5, model.Specs{"ram": model.BoolValue(true)}); !errors.Is(err, model.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if _, err := uc.SetSpecs(ctx, 404, model.Specs{}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetProductSpecs(t *testing.T) {
	_, uc := newUC()
	specs, err := uc.GetProductSpecs(context.Background(), 5, 0, locale.RU)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs.KeySpecs) != 1 || specs.KeySpecs[0].Key != "ram" || specs.KeySpecs[0].Name != "ram_ru" {
		t.Errorf("key specs = %+v", specs.KeySpecs)
	}
	if len(specs.Specs) != 0 {
		t.Errorf("specs = %+v", specs.Specs)
	}
}

func TestGetKeySpecsUsesCategorySchema(t *testing.T) {
	_, uc := newUC()
	entries, err := uc.GetKeySpecs(context.Background(), 2, model.Specs{
		"screen": model.NumberValue(14),
		"ram":    model.NumberValue(32),
	}, 1, locale.EN)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Key != "ram" {
		t.Errorf("entries = %+v", entries)
	}
}
