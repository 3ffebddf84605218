package analytics

import (
	"sort"

	"shoplens/internal/records"
)

// ProductSales holds aggregated sales for one product.
type ProductSales struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ProductRefunds holds the aggregated refunded amount for one product.
type ProductRefunds struct {
	Product string  `json:"product"`
	Amount  float64 `json:"amount"`
}

// OrdersByProduct joins order items to products by product id, sums quantity
// and revenue per product, and sorts descending by revenue. Items referencing
// a missing product are excluded rather than errored.
func OrdersByProduct(items []records.OrderItem, products []records.Product) []ProductSales {
	names := productNames(products)

	totals := make(map[string]*ProductSales)
	for _, item := range items {
		name, ok := names[item.ProductID]
		if !ok {
			continue
		}
		sales, ok := totals[item.ProductID]
		if !ok {
			sales = &ProductSales{Product: name}
			totals[item.ProductID] = sales
		}
		sales.Quantity += item.Quantity
		sales.Revenue += item.Price * float64(item.Quantity)
	}

	results := make([]ProductSales, 0, len(totals))
	for _, sales := range totals {
		results = append(results, *sales)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Revenue != results[j].Revenue {
			return results[i].Revenue > results[j].Revenue
		}
		return results[i].Product < results[j].Product
	})
	return results
}

// RefundsByProduct follows the refund → order item → product identifier
// chain, sums refunded amounts per product, and sorts descending. A refund
// whose item or product cannot be resolved is excluded from the breakdown.
func RefundsByProduct(refunds []records.Refund, items []records.OrderItem, products []records.Product) []ProductRefunds {
	names := productNames(products)

	itemProduct := make(map[string]string, len(items))
	for _, item := range items {
		itemProduct[item.ID] = item.ProductID
	}

	totals := make(map[string]float64)
	for _, refund := range refunds {
		productID, ok := itemProduct[refund.OrderItemID]
		if !ok {
			continue
		}
		if _, ok := names[productID]; !ok {
			continue
		}
		totals[productID] += refund.Amount
	}

	results := make([]ProductRefunds, 0, len(totals))
	for productID, amount := range totals {
		results = append(results, ProductRefunds{Product: names[productID], Amount: amount})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Amount != results[j].Amount {
			return results[i].Amount > results[j].Amount
		}
		return results[i].Product < results[j].Product
	})
	return results
}

func productNames(products []records.Product) map[string]string {
	names := make(map[string]string, len(products))
	for _, product := range products {
		names[product.ID] = product.Name
	}
	return names
}
