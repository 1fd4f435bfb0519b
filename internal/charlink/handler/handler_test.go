package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chardto "github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/charlink/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
)

type recordingUseCase struct {
	called     string
	categoryID int64
	link       dto.LinkInput
	ids        []int64
	created    *chardto.CreateCharacteristicInput
	sourceID   int64
}

func (u *recordingUseCase) List(_ context.Context, categoryID int64, _ locale.Locale) (*model.CategoryLinks, error) {
	return &model.CategoryLinks{CategoryID: categoryID, Version: 3, Items: []model.LinkedCharacteristic{}}, nil
}

func (u *recordingUseCase) Link(_ context.Context, categoryID int64, input dto.LinkInput) error {
	u.called, u.categoryID, u.link = "link", categoryID, input
	return nil
}

func (u *recordingUseCase) LinkMany(_ context.Context, categoryID int64, ids []int64) error {
	u.called, u.categoryID, u.ids = "link_many", categoryID, ids
	return nil
}

func (u *recordingUseCase) UpdateLink(context.Context, *dto.UpdateLinkInput) (*model.CategoryCharacteristic, error) {
	return &model.CategoryCharacteristic{}, nil
}

func (u *recordingUseCase) Unlink(context.Context, int64, int64) error { return nil }

func (u *recordingUseCase) ReplaceAll(_ context.Context, input *dto.ReplaceLinksInput) (int, error) {
	u.called, u.categoryID = "replace_all", input.CategoryID
	return *input.Version + 1, nil
}

func (u *recordingUseCase) CopyFrom(_ context.Context, sourceID, targetID int64) (int, error) {
	u.called, u.sourceID, u.categoryID = "copy", sourceID, targetID
	return 4, nil
}

func (u *recordingUseCase) CreateForCategory(_ context.Context, categoryID int64, ch *chardto.CreateCharacteristicInput, link dto.LinkInput) (*model.Characteristic, error) {
	u.called, u.categoryID, u.created, u.link = "create_for_category", categoryID, ch, link
	c := &model.Characteristic{Key: ch.Key, Type: ch.Type, NameRu: ch.NameRu}
	c.ID = 77
	return c, nil
}

func serve(t *testing.T, uc *recordingUseCase, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	resp := httpapi.NewResponder(locale.NewTranslator(), logger.NewNop())
	NewLinkHandler(uc, resp, nil, logger.NewNop()).Register(e.Group("/api"))

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLinkRequestShapes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		called string
	}{
		{"single id", `{"characteristic_id":5,"is_required":true,"show_in_key_specs":true,"order_index":2}`, "link"},
		{"id list", `{"characteristic_ids":[5,6,7]}`, "link_many"},
		{"new characteristic", `{"characteristic":{"key":"ram","type":"number","name_ru":"ОЗУ"},"show_in_key_specs":true}`, "create_for_category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &recordingUseCase{}
			rec := serve(t, uc, http.MethodPost, "/api/categories/2/characteristics", tt.body)
			if rec.Code != http.StatusCreated {
				t.Fatalf("code = %d, body = %s", rec.Code, rec.Body)
			}
			if uc.called != tt.called || uc.categoryID != 2 {
				t.Errorf("called %q on %d, want %q on 2", uc.called, uc.categoryID, tt.called)
			}
		})
	}
}

func TestLinkSingleIDCarriesMetadata(t *testing.T) {
	uc := &recordingUseCase{}
	serve(t, uc, http.MethodPost, "/api/categories/2/characteristics",
		`{"characteristic_id":5,"is_required":true,"show_in_key_specs":true,"order_index":2}`)

	want := dto.LinkInput{CharacteristicID: 5, IsRequired: true, ShowInKeySpecs: true, OrderIndex: 2}
	if uc.link != want {
		t.Errorf("link = %+v, want %+v", uc.link, want)
	}
}

func TestLinkManyAndCreatePayloads(t *testing.T) {
	uc := &recordingUseCase{}
	serve(t, uc, http.MethodPost, "/api/categories/2/characteristics", `{"characteristic_ids":[5,6,7]}`)
	if len(uc.ids) != 3 || uc.ids[2] != 7 {
		t.Errorf("ids = %v", uc.ids)
	}

	uc = &recordingUseCase{}
	rec := serve(t, uc, http.MethodPost, "/api/categories/2/characteristics",
		`{"characteristic":{"key":"ram","type":"number","name_ru":"ОЗУ"},"show_in_key_specs":true}`)
	if uc.created == nil || uc.created.Key != "ram" || !uc.link.ShowInKeySpecs {
		t.Errorf("created = %+v, link = %+v", uc.created, uc.link)
	}
	var ch model.Characteristic
	if err := json.Unmarshal(rec.Body.Bytes(), &ch); err != nil || ch.ID != 77 {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestLinkWithoutTargetIsBadRequest(t *testing.T) {
	uc := &recordingUseCase{}
	rec := serve(t, uc, http.MethodPost, "/api/categories/2/characteristics", `{"order_index":1}`)
	if rec.Code != http.StatusBadRequest || uc.called != "" {
		t.Errorf("code = %d, called = %q", rec.Code, uc.called)
	}
}

func TestCopyReadsSourceCategoryID(t *testing.T) {
	uc := &recordingUseCase{}
	rec := serve(t, uc, http.MethodPost, "/api/categories/9/copy-characteristics", `{"sourceCategoryId":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body)
	}
	if uc.sourceID != 2 || uc.categoryID != 9 {
		t.Errorf("source = %d, target = %d", uc.sourceID, uc.categoryID)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["copied"] != 4 {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestReplaceAllReturnsVersion(t *testing.T) {
	uc := &recordingUseCase{}
	rec := serve(t, uc, http.MethodPut, "/api/categories/2/characteristics",
		`{"version":3,"items":[{"characteristic_id":5}]}`)
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["version"] != 4 {
		t.Errorf("code = %d, body = %s", rec.Code, rec.Body)
	}
}
