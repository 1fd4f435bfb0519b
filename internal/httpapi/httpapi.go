// Package httpapi holds the pieces every echo handler shares: locale lookup,
// id parsing and error-to-status mapping.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/locale"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Responder renders errors as {"error": "<localized message>"}.
type Responder struct {
	tr     *locale.Translator
	logger logger.ZapLogger
}

func NewResponder(tr *locale.Translator, log logger.ZapLogger) *Responder {
	return &Responder{tr: tr, logger: log}
}

// Locale reads the ?locale= token of the request.
func Locale(c echo.Context) locale.Locale {
	return locale.Resolve(c.QueryParam("locale"))
}

func ParamID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// BadRequest is for malformed input caught before any use case runs.
func (r *Responder) BadRequest(c echo.Context, err error) error {
	log := logger.FromContext(c.Request().Context(), r.logger)
	log.Debug("bad request", zap.Error(err))
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  r.tr.T(Locale(c), locale.MsgInvalidRequest),
		"detail": err.Error(),
	})
}

// Error maps a use case error onto a status code and localized message.
// Internal details are logged, never returned.
func (r *Responder) Error(c echo.Context, op string, err error) error {
	log := logger.FromContext(c.Request().Context(), r.logger)
	l := Locale(c)

	switch {
	case errors.Is(err, model.ErrValidation):
		log.Warn(op+": validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  r.tr.T(l, locale.MsgInvalidRequest),
			"detail": err.Error(),
		})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": r.tr.T(l, locale.MsgNotFound)})
	case errors.Is(err, model.ErrStaleVersion):
		log.Warn(op+": stale version", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": r.tr.T(l, locale.MsgStaleVersion)})
	case errors.Is(err, model.ErrConflict):
		log.Warn(op+": conflict", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": r.tr.T(l, locale.MsgConflict)})
	case errors.Is(err, model.ErrSaveFailed):
		log.Error(op+": save failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": r.tr.T(l, locale.MsgSaveFailed)})
	default:
		log.Error(op+" failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": r.tr.T(l, locale.MsgInternal)})
	}
}
