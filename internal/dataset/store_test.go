package dataset_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplens/internal/dataset"
	"shoplens/internal/records"
	"shoplens/internal/testsupport"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStoreRefreshMemoizesOnFingerprint(t *testing.T) {
	dir := testsupport.WriteDataset(t, map[string]any{
		dataset.OrdersFile: []records.Row{testsupport.OrderRow("o1", "2024-07-01", 100)},
	})

	store := dataset.NewStore(dir, 0, discardLogger())
	require.Nil(t, store.Snapshot(), "no snapshot before first refresh")

	changed, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, changed, "first refresh always computes")

	snapshot := store.Snapshot()
	require.NotNil(t, snapshot)
	assert.InDelta(t, 100.0, snapshot.Financial.TotalRevenue, 1e-9)

	changed, err = store.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, changed, "unchanged input must not recompute")
	assert.Same(t, snapshot, store.Snapshot(), "cached snapshot is reused")

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, dataset.OrdersFile),
		[]byte(`[{"id":"o2","created_at":"2024-07-02","total_amount":40}]`), 0o644))

	changed, err = store.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, changed, "content change triggers recomputation")
	assert.InDelta(t, 40.0, store.Snapshot().Financial.TotalRevenue, 1e-9)
}

func TestStoreRefreshSurfacesLoadErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.SessionsFile), []byte("not json"), 0o644))

	store := dataset.NewStore(dir, 0, discardLogger())
	_, err := store.Refresh(context.Background())
	require.Error(t, err)
	assert.Nil(t, store.Snapshot(), "failed refresh leaves no partial snapshot")
}

func TestStoreEmptyDirectoryYieldsZeroSnapshot(t *testing.T) {
	store := dataset.NewStore(t.TempDir(), 0, discardLogger())

	changed, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)

	snapshot := store.Snapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, 0, snapshot.Financial.TotalOrders)
	assert.Equal(t, 0, snapshot.Traffic.TotalSessions)
}
