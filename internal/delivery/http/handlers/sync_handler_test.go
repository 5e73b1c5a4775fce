package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/profitpulse/shop-sync-service/internal/domain"
	syncusecase "github.com/profitpulse/shop-sync-service/internal/usecase/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSyncUsecase struct {
	backfill      *syncusecase.BackfillResult
	backfillErr   error
	backfillStore string
	start         *syncusecase.StartResult
	startErr      error
}

func (s *stubSyncUsecase) SyncOrders(ctx context.Context, storeID string, timeframeDays int) (*syncusecase.SyncResult, error) {
	return nil, nil
}

func (s *stubSyncUsecase) BackfillRefunds(ctx context.Context, storeID string) (*syncusecase.BackfillResult, error) {
	s.backfillStore = storeID
	return s.backfill, s.backfillErr
}

func (s *stubSyncUsecase) SyncProducts(ctx context.Context, storeID string) (*syncusecase.SyncResult, error) {
	return nil, nil
}

func (s *stubSyncUsecase) SyncProductCosts(ctx context.Context, storeID string) (*syncusecase.SyncResult, error) {
	return nil, nil
}

func (s *stubSyncUsecase) StartSync(storeID string, dataType domain.SyncDataType, timeframeDays int) (*syncusecase.StartResult, error) {
	return s.start, s.startErr
}

func (s *stubSyncUsecase) StopSync(storeID string, dataType domain.SyncDataType) error {
	return nil
}

func (s *stubSyncUsecase) GetStatus(ctx context.Context, storeID string, timeframeDays int) (*syncusecase.StatusReport, error) {
	return nil, nil
}

func (s *stubSyncUsecase) ReapGhosts(ctx context.Context) (*syncusecase.ReapResult, error) {
	return nil, nil
}

func newSyncContext(method, target, storeID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("storeID")
	c.SetParamValues(storeID)
	return c, rec
}

func TestBackfillRefunds_ReturnsCounts(t *testing.T) {
	stub := &stubSyncUsecase{
		backfill: &syncusecase.BackfillResult{Checked: 4, Updated: 2, Failed: 1},
	}
	h := NewSyncHandler(stub)

	c, rec := newSyncContext(http.MethodPost, "/sync/store-1/backfill", "store-1")
	require.NoError(t, h.BackfillRefunds(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "store-1", stub.backfillStore)

	var body syncusecase.BackfillResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Checked)
	assert.Equal(t, 2, body.Updated)
	assert.Equal(t, 1, body.Failed)
}

func TestStartSync_OpenBreakerMapsToTooManyRequests(t *testing.T) {
	stub := &stubSyncUsecase{
		startErr: fmt.Errorf("%w, retry in 5m0s", domain.ErrCircuitOpen),
	}
	h := NewSyncHandler(stub)

	c, rec := newSyncContext(http.MethodPost, "/sync/store-1/start", "store-1")
	require.NoError(t, h.StartSync(c))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "cooling down")
}
