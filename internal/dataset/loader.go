// Package dataset loads the static JSON collections from disk, applies the
// uniform row cap, and memoizes the derived metric snapshot on a content
// fingerprint so recomputation happens only when the raw input changes.
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"shoplens/internal/records"
)

// Collection file names expected inside the data directory.
const (
	OrdersFile     = "orders.json"
	OrderItemsFile = "order_items.json"
	RefundsFile    = "refunds.json"
	ProductsFile   = "products.json"
	SessionsFile   = "sessions.json"
	PageviewsFile  = "pageviews.json"
)

var collectionFiles = []string{
	OrdersFile,
	OrderItemsFile,
	RefundsFile,
	ProductsFile,
	SessionsFile,
	PageviewsFile,
}

// RawCollections holds the six decoded-but-uncleaned row arrays.
type RawCollections struct {
	Orders     []records.Row
	OrderItems []records.Row
	Refunds    []records.Row
	Products   []records.Row
	Sessions   []records.Row
	Pageviews  []records.Row
}

// Load reads the six collections from dir and returns them together with a
// fingerprint of the raw bytes. A missing file yields an empty collection; a
// file that exists but does not decode to a JSON array is an error. When
// rowLimit > 0 it is applied to every collection so cross-entity joins stay
// consistent.
func Load(dir string, rowLimit int) (*RawCollections, string, error) {
	raw := make(map[string][]records.Row, len(collectionFiles))
	hasher := sha256.New()

	// Deterministic file order keeps the fingerprint stable.
	names := append([]string(nil), collectionFiles...)
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				raw[name] = []records.Row{}
				continue
			}
			return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
		}

		var rows []records.Row
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, "", fmt.Errorf("failed to decode %s: %w", name, err)
		}
		if rowLimit > 0 && len(rows) > rowLimit {
			rows = rows[:rowLimit]
		}
		raw[name] = rows

		hasher.Write([]byte(name))
		hasher.Write(data)
	}

	fingerprint := hex.EncodeToString(hasher.Sum(nil))
	return &RawCollections{
		Orders:     raw[OrdersFile],
		OrderItems: raw[OrderItemsFile],
		Refunds:    raw[RefundsFile],
		Products:   raw[ProductsFile],
		Sessions:   raw[SessionsFile],
		Pageviews:  raw[PageviewsFile],
	}, fingerprint, nil
}

// Clean runs every record cleaner over the raw collections.
func (c *RawCollections) Clean() records.Dataset {
	return records.Dataset{
		Orders:     records.CleanOrders(c.Orders),
		OrderItems: records.CleanOrderItems(c.OrderItems),
		Refunds:    records.CleanRefunds(c.Refunds),
		Products:   records.CleanProducts(c.Products),
		Sessions:   records.CleanSessions(c.Sessions),
		Pageviews:  records.CleanPageviews(c.Pageviews),
	}
}
