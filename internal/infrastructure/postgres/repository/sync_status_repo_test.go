package repository

import (
	"testing"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStatusLifecycle(t *testing.T) {
	repo := NewDefaultSyncStatusRepository(openTestDB(t))

	// Absent entry reads as idle, not as an error.
	status, err := repo.Get(testStore, domain.SyncOrders)
	require.NoError(t, err)
	assert.Nil(t, status)

	require.NoError(t, repo.MarkRunning(testStore, domain.SyncOrders, 30))
	status, err = repo.Get(testStore, domain.SyncOrders)
	require.NoError(t, err)
	assert.True(t, status.SyncInProgress)
	assert.NotNil(t, status.LastHeartbeat)
	assert.Equal(t, 30, status.TimeframeDays)
	assert.Nil(t, status.LastSyncAt)

	require.NoError(t, repo.MarkCompleted(testStore, domain.SyncOrders))
	status, err = repo.Get(testStore, domain.SyncOrders)
	require.NoError(t, err)
	assert.False(t, status.SyncInProgress)
	assert.Nil(t, status.LastHeartbeat)
	assert.NotNil(t, status.LastSyncAt)
	assert.Nil(t, status.ErrorMessage)
}

func TestMarkRunning_PreservesLastSyncAt(t *testing.T) {
	repo := NewDefaultSyncStatusRepository(openTestDB(t))

	require.NoError(t, repo.MarkRunning(testStore, domain.SyncOrders, 30))
	require.NoError(t, repo.MarkCompleted(testStore, domain.SyncOrders))

	before, err := repo.Get(testStore, domain.SyncOrders)
	require.NoError(t, err)
	require.NotNil(t, before.LastSyncAt)

	require.NoError(t, repo.MarkRunning(testStore, domain.SyncOrders, 7))
	after, err := repo.Get(testStore, domain.SyncOrders)
	require.NoError(t, err)
	require.NotNil(t, after.LastSyncAt)
	assert.WithinDuration(t, *before.LastSyncAt, *after.LastSyncAt, time.Second)
}

func TestMarkFailed_ClearsHeartbeat(t *testing.T) {
	repo := NewDefaultSyncStatusRepository(openTestDB(t))

	require.NoError(t, repo.MarkRunning(testStore, domain.SyncOrders, 30))
	require.NoError(t, repo.MarkFailed(testStore, domain.SyncOrders, "remote unavailable"))

	status, err := repo.Get(testStore, domain.SyncOrders)
	require.NoError(t, err)
	assert.False(t, status.SyncInProgress)
	assert.Nil(t, status.LastHeartbeat)
	require.NotNil(t, status.ErrorMessage)
	assert.Equal(t, "remote unavailable", *status.ErrorMessage)
}

func TestListInProgress(t *testing.T) {
	repo := NewDefaultSyncStatusRepository(openTestDB(t))

	require.NoError(t, repo.MarkRunning("store-a", domain.SyncOrders, 30))
	require.NoError(t, repo.MarkRunning("store-b", domain.SyncProducts, 0))
	require.NoError(t, repo.MarkRunning("store-c", domain.SyncOrders, 30))
	require.NoError(t, repo.MarkCompleted("store-c", domain.SyncOrders))

	entries, err := repo.ListInProgress()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
