// Package testsupport provides raw-row fixtures and dataset-directory
// helpers shared by the dataset and http tests.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shoplens/internal/records"
)

// OrderRow builds a raw order row.
func OrderRow(id, createdAt string, amount any) records.Row {
	return records.Row{"id": id, "created_at": createdAt, "total_amount": amount}
}

// OrderItemRow builds a raw order-item row.
func OrderItemRow(id, orderID, productID string, quantity, price any) records.Row {
	return records.Row{
		"id":         id,
		"order_id":   orderID,
		"product_id": productID,
		"quantity":   quantity,
		"price":      price,
	}
}

// RefundRow builds a raw refund row.
func RefundRow(orderItemID string, amount any) records.Row {
	return records.Row{"order_item_id": orderItemID, "amount": amount}
}

// ProductRow builds a raw product row.
func ProductRow(id, name string) records.Row {
	return records.Row{"id": id, "name": name}
}

// SessionRow builds a raw session row with the given attribution fields;
// empty strings are omitted so cleaner defaults apply.
func SessionRow(id, userID, createdAt, device, repeat, source, campaign string) records.Row {
	row := records.Row{"id": id, "user_id": userID, "created_at": createdAt}
	if device != "" {
		row["device_type"] = device
	}
	if repeat != "" {
		row["is_repeat_session"] = repeat
	}
	if source != "" {
		row["utm_source"] = source
	}
	if campaign != "" {
		row["utm_campaign"] = campaign
	}
	return row
}

// PageviewRow builds a raw pageview row.
func PageviewRow(sessionID, url, createdAt string) records.Row {
	row := records.Row{"session_id": sessionID, "created_at": createdAt}
	if url != "" {
		row["pageview_url"] = url
	}
	return row
}

// WriteDataset writes the given collections as JSON files into a fresh temp
// directory and returns its path. Collections not present in files are not
// written, exercising the missing-file path of the loader.
func WriteDataset(t *testing.T, files map[string]any) string {
	t.Helper()
	dir := t.TempDir()
	for name, rows := range files {
		data, err := json.Marshal(rows)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return dir
}
