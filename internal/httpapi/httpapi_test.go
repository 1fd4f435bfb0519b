package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
)

func TestErrorMapping(t *testing.T) {
	r := NewResponder(locale.NewTranslator(), logger.NewNop())
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{fmt.Errorf("x: %w", model.ErrValidation), http.StatusBadRequest, "Invalid request"},
		{fmt.Errorf("x: %w", model.ErrNotFound), http.StatusNotFound, "Record not found"},
		{fmt.Errorf("x: %w", model.ErrConflict), http.StatusConflict, "A record with this key already exists"},
		{fmt.Errorf("x: %w", model.ErrStaleVersion), http.StatusConflict, "The data was changed by another user, please reload"},
		{fmt.Errorf("x: %w", model.ErrSaveFailed), http.StatusInternalServerError, "Failed to save changes"},
		{errors.New("db down"), http.StatusInternalServerError, "Internal server error"},
	}

	e := echo.New()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?locale=en", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := r.Error(c, "test", tt.err); err != nil {
			t.Fatalf("Error returned %v", err)
		}
		if rec.Code != tt.code {
			t.Errorf("%v: code = %d, want %d", tt.err, rec.Code, tt.code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("body: %v", err)
		}
		if body["error"] != tt.msg {
			t.Errorf("%v: message = %q, want %q", tt.err, body["error"], tt.msg)
		}
	}
}

func TestParamID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	c.SetParamValues("42")
	if id, err := ParamID(c, "id"); err != nil || id != 42 {
		t.Errorf("ParamID = %d, %v", id, err)
	}
	for _, bad := range []string{"0", "-1", "abc"} {
		c.SetParamValues(bad)
		if _, err := ParamID(c, "id"); err == nil {
			t.Errorf("ParamID(%q) should fail", bad)
		}
	}
}
