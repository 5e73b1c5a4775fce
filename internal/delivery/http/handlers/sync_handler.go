package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/profitpulse/shop-sync-service/internal/delivery/http/dto"
	"github.com/profitpulse/shop-sync-service/internal/domain"
	syncusecase "github.com/profitpulse/shop-sync-service/internal/usecase/sync"
)

type SyncHandler struct {
	syncUsecase syncusecase.SyncUsecase
}

func NewSyncHandler(syncUsecase syncusecase.SyncUsecase) *SyncHandler {
	return &SyncHandler{syncUsecase: syncUsecase}
}

func (h *SyncHandler) StartSync(c echo.Context) error {
	storeID := c.Param("storeID")

	var req dto.StartSyncRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	dataType := domain.SyncDataType(req.DataType)
	if dataType == "" {
		dataType = domain.SyncOrders
	}

	result, err := h.syncUsecase.StartSync(storeID, dataType, req.TimeframeDays)
	if err != nil {
		return writeSyncError(c, err)
	}
	if result.AlreadyInProgress {
		return c.JSON(http.StatusConflict, dto.StartSyncResponse{Status: "already_in_progress"})
	}
	return c.JSON(http.StatusAccepted, dto.StartSyncResponse{Status: "accepted"})
}

func (h *SyncHandler) StopSync(c echo.Context) error {
	storeID := c.Param("storeID")

	dataType := domain.SyncDataType(c.QueryParam("data_type"))
	if dataType == "" {
		dataType = domain.SyncOrders
	}

	if err := h.syncUsecase.StopSync(storeID, dataType); err != nil {
		return writeSyncError(c, err)
	}
	return c.JSON(http.StatusOK, dto.StopSyncResponse{Status: "stopping"})
}

// BackfillRefunds runs synchronously: it is an operator action and the
// caller wants the counts back.
func (h *SyncHandler) BackfillRefunds(c echo.Context) error {
	storeID := c.Param("storeID")

	result, err := h.syncUsecase.BackfillRefunds(c.Request().Context(), storeID)
	if err != nil {
		return writeSyncError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *SyncHandler) GetStatus(c echo.Context) error {
	storeID := c.Param("storeID")

	timeframeDays := 0
	if err := echo.QueryParamsBinder(c).Int("timeframe_days", &timeframeDays).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid timeframe_days"})
	}

	report, err := h.syncUsecase.GetStatus(c.Request().Context(), storeID, timeframeDays)
	if err != nil {
		return writeSyncError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *SyncHandler) ReapGhosts(c echo.Context) error {
	result, err := h.syncUsecase.ReapGhosts(c.Request().Context())
	if err != nil {
		return writeSyncError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// writeSyncError maps domain errors to status codes. An open breaker
// yields an explicit 429 whose message carries the remaining cooldown.
func writeSyncError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrCircuitOpen):
		return c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Error: "rate limited, cooling down, " + err.Error(),
		})
	case errors.Is(err, domain.ErrSyncInProgress):
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}
