package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc      category.UseCase
	resp    *httpapi.Responder
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, resp *httpapi.Responder, m *metrics.Metrics, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:      uc,
		resp:    resp,
		metrics: m,
		logger:  log,
	}
}

func (h *CategoryHandler) Register(g *echo.Group) {
	g.GET("/categories/tree", h.GetTree)
	g.GET("/categories", h.ListCategories)
	g.POST("/categories", h.CreateCategory)
	g.GET("/categories/:id", h.GetCategory)
	g.PUT("/categories/:id", h.UpdateCategory)
	g.DELETE("/categories/:id", h.DeactivateCategory)
}

func (h *CategoryHandler) GetTree(c echo.Context) error {
	tree, err := h.uc.GetTree(c.Request().Context(), httpapi.Locale(c))
	if err != nil {
		return h.resp.Error(c, "get category tree", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tree})
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	filters := &dto.CategoryFilters{
		RootOnly: c.QueryParam("root") == "true",
	}
	if raw := c.QueryParam("parent_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return h.resp.BadRequest(c, err)
		}
		filters.ParentID = &id
	}
	if raw := c.QueryParam("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return h.resp.BadRequest(c, err)
		}
		filters.IsActive = &active
	}
	filters.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filters.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	cats, total, err := h.uc.ListCategories(c.Request().Context(), filters)
	if err != nil {
		return h.resp.Error(c, "list categories", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cats, "total": total})
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	cat, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return h.resp.Error(c, "get category", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var input dto.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}

	cat, err := h.uc.CreateCategory(c.Request().Context(), &input)
	h.metrics.RecordOperation("category", "create", err)
	if err != nil {
		return h.resp.Error(c, "create category", err)
	}

	logger.FromContext(c.Request().Context(), h.logger).Info("category created",
		zap.Int64("category_id", cat.ID), zap.String("slug", cat.Slug))
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	var input dto.UpdateCategoryInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}
	input.ID = id

	cat, err := h.uc.UpdateCategory(c.Request().Context(), &input)
	h.metrics.RecordOperation("category", "update", err)
	if err != nil {
		return h.resp.Error(c, "update category", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) DeactivateCategory(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	err = h.uc.DeactivateCategory(c.Request().Context(), id)
	h.metrics.RecordOperation("category", "deactivate", err)
	if err != nil {
		return h.resp.Error(c, "deactivate category", err)
	}
	return c.NoContent(http.StatusNoContent)
}
