package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/profitpulse/shop-sync-service/internal/delivery/http/dto"
	"github.com/profitpulse/shop-sync-service/internal/usecase/analytics"
)

type AnalyticsHandler struct {
	analyticsUsecase analytics.AnalyticsUsecase
	defaultDays      int
}

func NewAnalyticsHandler(analyticsUsecase analytics.AnalyticsUsecase, defaultDays int) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUsecase: analyticsUsecase,
		defaultDays:      defaultDays,
	}
}

// GetSummary serves the financial summary. The window is either
// from/to (RFC3339) or a trailing timeframe_days; the latter wins by
// default.
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	storeID := c.Param("storeID")

	days := h.defaultDays
	var from, to time.Time
	err := echo.QueryParamsBinder(c).
		Int("timeframe_days", &days).
		Time("from", &from, time.RFC3339).
		Time("to", &to, time.RFC3339).
		BindError()
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid query parameters"})
	}

	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -days)
	}
	if !from.Before(to) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "from must be before to"})
	}

	summary, err := h.analyticsUsecase.ComputeSummary(c.Request().Context(), storeID, from, to)
	if err != nil {
		return writeSyncError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
