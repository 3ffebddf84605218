package records

import "strings"

// CleanOrders normalizes raw order rows. A row without a coercible id or
// created_at date is dropped; total_amount defaults to 0 and is clamped
// non-negative.
func CleanOrders(rows []Row) []Order {
	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		id, ok := stringValue(row, "id")
		if !ok {
			continue
		}
		createdAt, ok := timeValue(row, "created_at")
		if !ok {
			continue
		}
		amount, _ := floatValue(row, "total_amount")
		orders = append(orders, Order{
			ID:          id,
			CreatedAt:   createdAt,
			TotalAmount: nonNegative(amount),
		})
	}
	return orders
}

// CleanOrderItems normalizes raw order-item rows. Id, order_id and
// product_id are required; quantity defaults to 1, price to 0.
func CleanOrderItems(rows []Row) []OrderItem {
	items := make([]OrderItem, 0, len(rows))
	for _, row := range rows {
		id, ok := stringValue(row, "id")
		if !ok {
			continue
		}
		orderID, ok := stringValue(row, "order_id")
		if !ok {
			continue
		}
		productID, ok := stringValue(row, "product_id")
		if !ok {
			continue
		}
		quantity, ok := intValue(row, "quantity")
		if !ok || quantity < 1 {
			quantity = 1
		}
		price, _ := floatValue(row, "price")
		items = append(items, OrderItem{
			ID:        id,
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
			Price:     nonNegative(price),
		})
	}
	return items
}

// CleanRefunds normalizes raw refund rows. Order_item_id is required;
// amount defaults to 0 and is clamped non-negative.
func CleanRefunds(rows []Row) []Refund {
	refunds := make([]Refund, 0, len(rows))
	for _, row := range rows {
		itemID, ok := stringValue(row, "order_item_id")
		if !ok {
			continue
		}
		amount, _ := floatValue(row, "amount")
		refunds = append(refunds, Refund{
			OrderItemID: itemID,
			Amount:      nonNegative(amount),
		})
	}
	return refunds
}

// CleanProducts normalizes raw product rows. Id is required; a missing name
// falls back to the id so per-product breakdowns stay labelled.
func CleanProducts(rows []Row) []Product {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		id, ok := stringValue(row, "id")
		if !ok {
			continue
		}
		products = append(products, Product{
			ID:   id,
			Name: optionalString(row, "name", id),
		})
	}
	return products
}

// CleanSessions normalizes raw session rows. Id and created_at are required.
// Device type is lower-cased with an "unknown" bucket; attribution fields get
// their direct/none defaults here so aggregators never re-apply fallbacks.
func CleanSessions(rows []Row) []Session {
	sessions := make([]Session, 0, len(rows))
	for _, row := range rows {
		id, ok := stringValue(row, "id")
		if !ok {
			continue
		}
		createdAt, ok := timeValue(row, "created_at")
		if !ok {
			continue
		}
		device := strings.ToLower(optionalString(row, "device_type", UnknownDevice))
		if device == "" {
			device = UnknownDevice
		}
		sessions = append(sessions, Session{
			ID:              id,
			UserID:          optionalString(row, "user_id", ""),
			CreatedAt:       createdAt,
			DeviceType:      device,
			IsRepeatSession: optionalString(row, "is_repeat_session", ""),
			UTMSource:       optionalString(row, "utm_source", DirectSource),
			UTMCampaign:     optionalString(row, "utm_campaign", NoCampaign),
		})
	}
	return sessions
}

// CleanPageviews normalizes raw pageview rows. Session_id is required; the
// URL defaults to "/" and an unparsable timestamp defaults to the zero time
// rather than dropping the row, so the pageview still counts toward session
// depth even when its ordering information is lost.
func CleanPageviews(rows []Row) []Pageview {
	pageviews := make([]Pageview, 0, len(rows))
	for _, row := range rows {
		sessionID, ok := stringValue(row, "session_id")
		if !ok {
			continue
		}
		createdAt, _ := timeValue(row, "created_at")
		pageviews = append(pageviews, Pageview{
			SessionID: sessionID,
			URL:       optionalString(row, "pageview_url", DefaultLandingPage),
			CreatedAt: createdAt,
		})
	}
	return pageviews
}
