package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoplens/internal/dataset"
	"shoplens/internal/records"
	"shoplens/internal/testsupport"
)

func TestLoadReadsAllCollections(t *testing.T) {
	dir := testsupport.WriteDataset(t, map[string]any{
		dataset.OrdersFile: []records.Row{
			testsupport.OrderRow("o1", "2024-07-01T10:00:00Z", 100),
		},
		dataset.ProductsFile: []records.Row{
			testsupport.ProductRow("p1", "Widget"),
		},
		dataset.SessionsFile: []records.Row{
			testsupport.SessionRow("s1", "u1", "2024-07-01T10:00:00Z", "desktop", "0", "", ""),
		},
		dataset.PageviewsFile: []records.Row{
			testsupport.PageviewRow("s1", "/home", "2024-07-01T10:00:00Z"),
		},
	})

	raw, fingerprint, err := dataset.Load(dir, 0)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.NotEmpty(t, fingerprint)

	assert.Len(t, raw.Orders, 1)
	assert.Len(t, raw.Products, 1)
	assert.Len(t, raw.Sessions, 1)
	assert.Len(t, raw.Pageviews, 1)
	assert.Empty(t, raw.OrderItems, "missing file yields empty collection")
	assert.Empty(t, raw.Refunds)
}

func TestLoadAppliesRowLimitUniformly(t *testing.T) {
	orders := make([]records.Row, 5)
	sessions := make([]records.Row, 5)
	pageviews := make([]records.Row, 2)
	for i := range orders {
		orders[i] = testsupport.OrderRow("o", "2024-07-01", 1)
		sessions[i] = testsupport.SessionRow("s", "u", "2024-07-01T00:00:00Z", "", "", "", "")
	}
	for i := range pageviews {
		pageviews[i] = testsupport.PageviewRow("s", "/", "2024-07-01T00:00:00Z")
	}

	dir := testsupport.WriteDataset(t, map[string]any{
		dataset.OrdersFile:    orders,
		dataset.SessionsFile:  sessions,
		dataset.PageviewsFile: pageviews,
	})

	raw, _, err := dataset.Load(dir, 3)
	require.NoError(t, err)

	assert.Len(t, raw.Orders, 3, "cap applies to every collection")
	assert.Len(t, raw.Sessions, 3)
	assert.Len(t, raw.Pageviews, 2, "collections under the cap are untouched")
}

func TestLoadRejectsMalformedCollection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.OrdersFile), []byte(`{"not":"an array"}`), 0o644))

	_, _, err := dataset.Load(dir, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dataset.OrdersFile)
}

func TestLoadFingerprintTracksContent(t *testing.T) {
	dir := testsupport.WriteDataset(t, map[string]any{
		dataset.OrdersFile: []records.Row{testsupport.OrderRow("o1", "2024-07-01", 100)},
	})

	_, first, err := dataset.Load(dir, 0)
	require.NoError(t, err)

	_, second, err := dataset.Load(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same bytes, same fingerprint")

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, dataset.OrdersFile),
		[]byte(`[{"id":"o2","created_at":"2024-07-02","total_amount":7}]`), 0o644))

	_, third, err := dataset.Load(dir, 0)
	require.NoError(t, err)
	assert.NotEqual(t, first, third, "changed bytes, changed fingerprint")
}

func TestCleanWiresEveryCleaner(t *testing.T) {
	raw := &dataset.RawCollections{
		Orders:     []records.Row{testsupport.OrderRow("o1", "2024-07-01", 10)},
		OrderItems: []records.Row{testsupport.OrderItemRow("i1", "o1", "p1", 1, 10)},
		Refunds:    []records.Row{testsupport.RefundRow("i1", 5)},
		Products:   []records.Row{testsupport.ProductRow("p1", "Widget")},
		Sessions:   []records.Row{testsupport.SessionRow("s1", "u1", "2024-07-01T00:00:00Z", "", "", "", "")},
		Pageviews:  []records.Row{testsupport.PageviewRow("s1", "/", "2024-07-01T00:00:00Z")},
	}

	data := raw.Clean()
	assert.Len(t, data.Orders, 1)
	assert.Len(t, data.OrderItems, 1)
	assert.Len(t, data.Refunds, 1)
	assert.Len(t, data.Products, 1)
	assert.Len(t, data.Sessions, 1)
	assert.Len(t, data.Pageviews, 1)
}
