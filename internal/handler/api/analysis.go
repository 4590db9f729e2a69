package api

import (
	"time"

	models "MarketLens/internal/domain/models"
	"MarketLens/internal/service/metrics"
	"MarketLens/internal/usecase"
	xhttp "MarketLens/pkg/http"
	xlogger "MarketLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler exposes the analysis pipeline over Echo.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.MarketAnalyzer
}

func NewAnalysisHandler(logger *xlogger.Logger, analyzer *usecase.MarketAnalyzer) *AnalysisHandler {
	metrics.Register()
	return &AnalysisHandler{logger: logger, analyzer: analyzer}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analysis", h.Analysis)
	g.GET("/regime/history", h.RegimeHistory)
	g.GET("/percentiles", h.Percentiles)
	e.GET("/health", h.Health)
}

func (h *AnalysisHandler) Analysis(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.EndpointLatency.WithLabelValues("analysis").Observe(time.Since(start).Seconds()) }()

	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), req.Ticker, req.Refresh)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("analysis").Inc()
		h.logger.Error("analysis usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) RegimeHistory(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.EndpointLatency.WithLabelValues("regime_history").Observe(time.Since(start).Seconds()) }()

	req := &models.RegimeHistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.RegimeHistory(c.Request().Context(), req.Days)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("regime_history").Inc()
		h.logger.Error("regime history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Percentiles(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.EndpointLatency.WithLabelValues("percentiles").Observe(time.Since(start).Seconds()) }()

	req := &models.PercentilesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Percentiles(c.Request().Context(), req.Days)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("percentiles").Inc()
		h.logger.Error("percentiles usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	if err := h.analyzer.Health(c.Request().Context()); err != nil {
		h.logger.Warn("health check failed", xlogger.Error(err))
		return xhttp.SuccessResponse(c, map[string]string{"status": "degraded", "cache": err.Error()})
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
