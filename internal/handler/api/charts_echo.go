package api

import (
	"errors"

	models "TrueArk/internal/domain/models"
	"TrueArk/internal/usecase"
	xhttp "TrueArk/pkg/http"
	xlogger "TrueArk/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChartsEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type ChartsEchoHandler struct {
	logger *xlogger.Logger
	svc    *usecase.ChartService
	health func(c echo.Context) error
}

func NewChartsEchoHandler(logger *xlogger.Logger, svc *usecase.ChartService) *ChartsEchoHandler {
	return &ChartsEchoHandler{logger: logger, svc: svc}
}

// SetHealthCheck installs an optional infrastructure health probe invoked by
// the /health endpoint in addition to the ephemeris mode report.
func (h *ChartsEchoHandler) SetHealthCheck(fn func(c echo.Context) error) {
	h.health = fn
}

func (h *ChartsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chart", h.Compute)
	e.POST("/chart/store", h.ComputeAndStore)
	e.GET("/charts", h.List)
	e.GET("/charts/:id", h.Get)
	e.GET("/health", h.Health)
}

func (h *ChartsEchoHandler) Compute(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	out, err := h.svc.Compute(c.Request().Context(), req.Input())
	if err != nil {
		return h.chartError(c, err)
	}
	return xhttp.SuccessResponse(c, out)
}

func (h *ChartsEchoHandler) ComputeAndStore(c echo.Context) error {
	req := &models.StoreChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	stored, err := h.svc.ComputeAndStore(c.Request().Context(), req.Input(), req.EntityID, req.EntityType)
	if err != nil {
		return h.chartError(c, err)
	}
	return xhttp.CreatedResponse(c, stored)
}

func (h *ChartsEchoHandler) Get(c echo.Context) error {
	id := c.Param("id")

	chart, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrChartNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("chart %s not found", id))
		}
		return h.chartError(c, err)
	}
	return xhttp.SuccessResponse(c, chart)
}

func (h *ChartsEchoHandler) List(c echo.Context) error {
	req := &models.ListChartsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	charts, err := h.svc.List(c.Request().Context(), models.ChartFilter{
		EntityID:   req.EntityID,
		EntityType: req.EntityType,
		Limit:      req.Limit,
	})
	if err != nil {
		return h.chartError(c, err)
	}
	return xhttp.ListResponse(c, charts, int64(len(charts)))
}

func (h *ChartsEchoHandler) Health(c echo.Context) error {
	if h.health != nil {
		if err := h.health(c); err != nil {
			h.logger.Error("health check failed", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.InternalError("dependency unhealthy").WithError(err))
		}
	}
	return xhttp.SuccessResponse(c, map[string]string{
		"status":         "ok",
		"ephemeris_mode": string(h.svc.Engine().Mode()),
	})
}

// chartError maps engine errors onto transport statuses. Input rejections are
// the caller's fault (422); calculation and self-check failures are ours (500).
func (h *ChartsEchoHandler) chartError(c echo.Context, err error) error {
	var inputErr *usecase.InputError
	if errors.As(err, &inputErr) {
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableEntityError(inputErr.Error()))
	}

	var calcErr *usecase.CalculationError
	if errors.As(err, &calcErr) {
		h.logger.Error("chart calculation error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("calculation failed for %s", calcErr.Subject).WithError(err))
	}

	var valErr *usecase.ValidationError
	if errors.As(err, &valErr) {
		h.logger.Error("chart output validation error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("output validation failed").WithError(err))
	}

	h.logger.Error("chart usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
