package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"TrendScan/internal/domain/models"
	domrepo "TrendScan/internal/domain/repository"
	xhttp "TrendScan/pkg/http"
	xlogger "TrendScan/pkg/logger"
)

// ScanEchoHandler serves the scanner status endpoints.
type ScanEchoHandler struct {
	logger  *xlogger.Logger
	latest  domrepo.LatestReader
	history domrepo.HistoryStore
}

func NewScanEchoHandler(logger *xlogger.Logger, latest domrepo.LatestReader, history domrepo.HistoryStore) *ScanEchoHandler {
	return &ScanEchoHandler{logger: logger, latest: latest, history: history}
}

func (h *ScanEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api/scan")
	g.GET("/latest", h.Latest)
	g.GET("/history", h.History)
}

func (h *ScanEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ScanEchoHandler) Latest(c echo.Context) error {
	rec, err := h.latest.Latest(c.Request().Context())
	if errors.Is(err, models.ErrNoCycle) {
		return xhttp.ErrorResponse(c, xhttp.NotFoundError("no scan cycle has completed yet"))
	}
	if err != nil {
		h.logger.Error("latest cycle lookup failed", xlogger.Error(err))
		return xhttp.ErrorResponse(c, xhttp.InternalError("latest cycle unavailable").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return xhttp.SuccessResponse(c, rec)
}

func (h *ScanEchoHandler) History(c echo.Context) error {
	req, verr := xhttp.BindRequest[models.HistoryRequest](c)
	if verr != nil {
		return xhttp.ValidationResponse(c, verr)
	}

	records, err := h.history.Recent(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("history lookup failed", xlogger.Error(err))
		return xhttp.ErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}
