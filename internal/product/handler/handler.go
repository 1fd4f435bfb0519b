package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/httpapi"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc      product.UseCase
	resp    *httpapi.Responder
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, resp *httpapi.Responder, m *metrics.Metrics, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:      uc,
		resp:    resp,
		metrics: m,
		logger:  log,
	}
}

func (h *ProductHandler) Register(g *echo.Group) {
	g.GET("/products", h.ListProducts)
	g.GET("/products/:id", h.GetProduct)
	g.GET("/products/:id/specs", h.GetSpecs)
	g.PUT("/products/:id/specs", h.SetSpecs)
	g.GET("/products/:id/key-specs", h.GetProductSpecs)
}

// listItem is a listing card. KeySpecs is filled only when the caller asks
// for key_specs=true.
type listItem struct {
	model.Product
	KeySpecs []model.SpecEntry `json:"key_specs,omitempty"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	filters, err := dto.ParseFilters(c.QueryParams())
	if err != nil {
		return h.resp.Error(c, "parse product filters", err)
	}

	ctx := c.Request().Context()
	products, total, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		return h.resp.Error(c, "list products", err)
	}

	withKeySpecs, _ := strconv.ParseBool(c.QueryParam("key_specs"))
	l := httpapi.Locale(c)
	items := make([]listItem, len(products))
	for i, p := range products {
		items[i].Product = p
		if !withKeySpecs {
			continue
		}
		keySpecs, err := h.uc.GetKeySpecs(ctx, p.CategoryID, p.Specs, product.DefaultKeySpecLimit, l)
		if err != nil {
			return h.resp.Error(c, "list key specs", err)
		}
		items[i].KeySpecs = keySpecs
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
		"page":  filters.Page,
		"limit": filters.Limit,
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return h.resp.Error(c, "get product", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) GetSpecs(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	specs, err := h.uc.GetSpecs(c.Request().Context(), id)
	if err != nil {
		return h.resp.Error(c, "get product specs", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"product_id": id, "specs": specs})
}

func (h *ProductHandler) SetSpecs(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}

	var input dto.SetSpecsInput
	if err := c.Bind(&input); err != nil {
		return h.resp.BadRequest(c, err)
	}

	specs, err := h.uc.SetSpecs(c.Request().Context(), id, input.Specs)
	h.metrics.RecordOperation("product_specs", "set", err)
	if err != nil {
		return h.resp.Error(c, "set product specs", err)
	}

	logger.FromContext(c.Request().Context(), h.logger).Info("product specs saved",
		zap.Int64("product_id", id), zap.Int("specs", len(specs)))
	return c.JSON(http.StatusOK, echo.Map{"product_id": id, "specs": specs})
}

func (h *ProductHandler) GetProductSpecs(c echo.Context) error {
	id, err := httpapi.ParamID(c, "id")
	if err != nil {
		return h.resp.BadRequest(c, err)
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	specs, err := h.uc.GetProductSpecs(c.Request().Context(), id, limit, httpapi.Locale(c))
	if err != nil {
		return h.resp.Error(c, "get key specs", err)
	}
	return c.JSON(http.StatusOK, specs)
}
