package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-catalog-service/internal/stats"
	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	uc stats.UseCase
}

func NewStatsHandler(uc stats.UseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) Register(g *echo.Group) {
	g.GET("/dashboard/stats", h.GetDashboard)
}

func (h *StatsHandler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Dashboard(c.Request().Context()))
}
