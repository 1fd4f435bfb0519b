package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/filter"
	"github.com/fekuna/omnipos-catalog-service/internal/filter/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FilterHandler struct {
	uc      filter.UseCase
	resp    *httpapi.Responder
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

func NewFilterHandler(uc filter.UseCase, resp *httpapi.Responder, m *metrics.Metrics, log logger.ZapLogger) *FilterHandler {
	return &FilterHandler{
		uc:      uc,
		resp:    resp,
		metrics: m,
		logger:  log,
	}
}

func (h *FilterHandler) Register(g *echo.Group) {
	g.GET("/filters", h.ListFilters)
	g.GET("/filters/suggest", h.SuggestDraft)
	g.POST("/filters", h.CreateFilter)
	g.PUT("/filters/:id", h.UpdateFilter)
	g.DELETE("/filters/:id", h.DeleteFilter)
}

func queryID(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func (h *FilterHandler) ListFilters(c echo.Context) error {
	subID, err := queryID(c, "subcategory_id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	items, err := h.uc.ListFilters(c.Request().Context(), subID, httpapi.Locale(c))
	if err != nil {
		return h.resp.Error(c, "list filters", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *FilterHandler) SuggestDraft(c echo.Context) error {
	subID, err := queryID(c, "subcategory_id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	charID, err := queryID(c, "characteristic_id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	draft, err := h.uc.SuggestDraft(c.Request().Context(), subID, charID)
	if err != nil {
		return h.resp.Error(c, "suggest filter", err)
	}
	return c.JSON(http.StatusOK, draft)
}

func (h *FilterHandler) CreateFilter(c echo.Context) error {
	var input dto.CreateFilterInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}

	f, err := h.uc.CreateFilter(c.Request().Context(), &input)
	h.metrics.RecordOperation("filter", "create", err)
	if err != nil {
		return h.resp.Error(c, "create filter", err)
	}

	logger.FromContext(c.Request().Context(), h.logger).Info("filter saved",
		zap.Int64("filter_id", f.ID), zap.String("type", string(f.UIType)))
	return c.JSON(http.StatusCreated, f)
}

func (h *FilterHandler) UpdateFilter(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	var input dto.UpdateFilterInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}
	input.ID = id

	f, err := h.uc.UpdateFilter(c.Request().Context(), &input)
	h.metrics.RecordOperation("filter", "update", err)
	if err != nil {
		return h.resp.Error(c, "update filter", err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FilterHandler) DeleteFilter(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	err = h.uc.DeleteFilter(c.Request().Context(), id)
	h.metrics.RecordOperation("filter", "delete", err)
	if err != nil {
		return h.resp.Error(c, "delete filter", err)
	}
	return c.NoContent(http.StatusNoContent)
}
