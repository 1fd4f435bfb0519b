package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/characteristic"
	"github.com/fekuna/omnipos-catalog-service/internal/characteristic/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CharacteristicHandler struct {
	uc      characteristic.UseCase
	resp    *httpapi.Responder
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

func NewCharacteristicHandler(uc characteristic.UseCase, resp *httpapi.Responder, m *metrics.Metrics, log logger.ZapLogger) *CharacteristicHandler {
	return &CharacteristicHandler{
		uc:      uc,
		resp:    resp,
		metrics: m,
		logger:  log,
	}
}

func (h *CharacteristicHandler) Register(g *echo.Group) {
	g.GET("/characteristics/suggest-key", h.SuggestKey)
	g.GET("/characteristics", h.ListCharacteristics)
	g.POST("/characteristics", h.CreateCharacteristic)
	g.GET("/characteristics/:id", h.GetCharacteristic)
	g.PUT("/characteristics/:id", h.UpdateCharacteristic)
	g.DELETE("/characteristics/:id", h.DeleteCharacteristic)
}

func (h *CharacteristicHandler) SuggestKey(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"key": h.uc.SuggestKey(c.QueryParam("name"))})
}

func (h *CharacteristicHandler) ListCharacteristics(c echo.Context) error {
	filters := &dto.CharacteristicFilters{
		Type:   model.CharacteristicType(c.QueryParam("type")),
		Search: c.QueryParam("search"),
	}
	if raw := c.QueryParam("filterable"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return h.resp.BadRequest(c, err)
		}
		filters.Filterable = &v
	}

	items, err := h.uc.ListCharacteristics(c.Request().Context(), filters)
	if err != nil {
		return h.resp.Error(c, "list characteristics", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *CharacteristicHandler) GetCharacteristic(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	ch, err := h.uc.GetCharacteristic(c.Request().Context(), id)
	if err != nil {
		return h.resp.Error(c, "get characteristic", err)
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *CharacteristicHandler) CreateCharacteristic(c echo.Context) error {
	var input dto.CreateCharacteristicInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}

	ch, err := h.uc.CreateCharacteristic(c.Request().Context(), &input)
	h.metrics.RecordOperation("characteristic", "create", err)
	if err != nil {
		return h.resp.Error(c, "create characteristic", err)
	}

	logger.FromContext(c.Request().Context(), h.logger).Info("characteristic created",
		zap.Int64("characteristic_id", ch.ID), zap.String("key", ch.Key))
	return c.JSON(http.StatusCreated, ch)
}

func (h *CharacteristicHandler) UpdateCharacteristic(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	var input dto.UpdateCharacteristicInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}
	input.ID = id

	ch, err := h.uc.UpdateCharacteristic(c.Request().Context(), &input)
	h.metrics.RecordOperation("characteristic", "update", err)
	if err != nil {
		return h.resp.Error(c, "update characteristic", err)
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *CharacteristicHandler) DeleteCharacteristic(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	err = h.uc.DeleteCharacteristic(c.Request().Context(), id)
	h.metrics.RecordOperation("characteristic", "delete", err)
	if err != nil {
		return h.resp.Error(c, "delete characteristic", err)
	}
	return c.NoContent(http.StatusNoContent)
}
