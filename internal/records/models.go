// Package records normalizes raw, loosely-typed dataset rows into fixed-shape
// typed records for the six commerce and traffic entities. Cleaners never
// fail: rows whose identifying field cannot be coerced are dropped, optional
// fields fall back to documented defaults.
package records

import "time"

// Row is one raw, loosely-typed record as decoded from a JSON collection.
type Row = map[string]any

// Order is one purchase event.
type Order struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	TotalAmount float64   `json:"total_amount"`
}

// OrderItem is one product line within an order.
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Refund is a refunded amount against a single order item.
type Refund struct {
	OrderItemID string  `json:"order_item_id"`
	Amount      float64 `json:"amount"`
}

// Product is a catalog entry.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is one visit, carrying device and attribution metadata.
// IsRepeatSession keeps the raw "0"/"1" string coding from the source data;
// values outside that set are excluded from both the new and returning
// buckets by the traffic engine.
type Session struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	DeviceType      string    `json:"device_type"`
	IsRepeatSession string    `json:"is_repeat_session"`
	UTMSource       string    `json:"utm_source"`
	UTMCampaign     string    `json:"utm_campaign"`
}

// Pageview is one page load within a session.
type Pageview struct {
	SessionID string    `json:"session_id"`
	URL       string    `json:"pageview_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Dataset groups the cleaned collections that feed the analytics engine.
type Dataset struct {
	Orders     []Order
	OrderItems []OrderItem
	Refunds    []Refund
	Products   []Product
	Sessions   []Session
	Pageviews  []Pageview
}
