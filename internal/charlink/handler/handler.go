package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/charlink"
	"github.com/fekuna/omnipos-catalog-service/internal/charlink/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LinkHandler struct {
	uc      charlink.UseCase
	resp    *httpapi.Responder
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

func NewLinkHandler(uc charlink.UseCase, resp *httpapi.Responder, m *metrics.Metrics, log logger.ZapLogger) *LinkHandler {
	return &LinkHandler{
		uc:      uc,
		resp:    resp,
		metrics: m,
		logger:  log,
	}
}

func (h *LinkHandler) Register(g *echo.Group) {
	g.GET("/categories/:id/characteristics", h.List)
	g.POST("/categories/:id/characteristics", h.Link)
	g.PUT("/categories/:id/characteristics", h.ReplaceAll)
	g.PUT("/categories/:id/characteristics/:charId", h.UpdateLink)
	g.DELETE("/categories/:id/characteristics/:charId", h.Unlink)
	g.POST("/categories/:id/copy-characteristics", h.CopyFrom)
}

func (h *LinkHandler) List(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	links, err := h.uc.List(c.Request().Context(), id, httpapi.Locale(c))
	if err != nil {
		return h.resp.Error(c, "list category characteristics", err)
	}
	return c.JSON(http.StatusOK, links)
}

// Link handles three request shapes: a new characteristic to create and link,
// a list of ids to link with defaults, or a single id with metadata.
func (h *LinkHandler) Link(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	var req dto.LinkRequest
	if err := c.Bind(&req); err != nil {
		return h.resp.BadRequest(c, err)
	}

	ctx := c.Request().Context()
	switch {
	case req.Characteristic != nil:
		ch, err := h.uc.CreateForCategory(ctx, id, req.Characteristic, req.LinkInput)
		h.metrics.RecordOperation("link", "create_for_category", err)
		if err != nil {
			return h.resp.Error(c, "create characteristic for category", err)
		}
		return c.JSON(http.StatusCreated, ch)

	case len(req.CharacteristicIDs) > 0:
		err = h.uc.LinkMany(ctx, id, req.CharacteristicIDs)
		h.metrics.RecordOperation("link", "link_many", err)

	case req.CharacteristicID > 0:
		err = h.uc.Link(ctx, id, req.LinkInput)
		h.metrics.RecordOperation("link", "link", err)

	default:
		return h.resp.BadRequest(c, errors.New("characteristic_id, characteristic_ids or characteristic is required"))
	}
	if err != nil {
		return h.resp.Error(c, "link characteristics", err)
	}

	links, err := h.uc.List(ctx, id, httpapi.Locale(c))
	if err != nil {
		return h.resp.Error(c, "list category characteristics", err)
	}
	return c.JSON(http.StatusCreated, links)
}

func (h *LinkHandler) ReplaceAll(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	var input dto.ReplaceLinksInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}
	input.CategoryID = id

	version, err := h.uc.ReplaceAll(c.Request().Context(), &input)
	h.metrics.RecordOperation("link", "replace_all", err)
	if err != nil {
		return h.resp.Error(c, "replace category characteristics", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"version": version})
}

func (h *LinkHandler) UpdateLink(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	charID, err := httpapi.ParamID(c, "charId")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	var input dto.UpdateLinkInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}
	input.CategoryID = id
	input.CharacteristicID = charID

	link, err := h.uc.UpdateLink(c.Request().Context(), &input)
	h.metrics.RecordOperation("link", "update", err)
	if err != nil {
		return h.resp.Error(c, "update category characteristic", err)
	}
	return c.JSON(http.StatusOK, link)
}

func (h *LinkHandler) Unlink(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	charID, err := httpapi.ParamID(c, "charId")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	err = h.uc.Unlink(c.Request().Context(), id, charID)
	h.metrics.RecordOperation("link", "unlink", err)
	if err != nil {
		return h.resp.Error(c, "unlink characteristic", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LinkHandler) CopyFrom(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	var input dto.CopyLinksInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}

	n, err := h.uc.CopyFrom(c.Request().Context(), input.SourceCategoryID, id)
	h.metrics.RecordOperation("link", "copy", err)
	if err != nil {
		return h.resp.Error(c, "copy category characteristics", err)
	}

	logger.FromContext(c.Request().Context(), h.logger).Info("category characteristics copied",
		zap.Int64("source_category_id", input.SourceCategoryID),
		zap.Int64("target_category_id", id),
		zap.Int("copied", n),
	)
	return c.JSON(http.StatusOK, echo.Map{"copied": n})
}
