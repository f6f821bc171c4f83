// Package admin computes read-only dashboard statistics over already-fetched
// order and customer collections. Nothing here mutates state or touches the
// database; callers fetch, admin derives.
package admin

import (
	"sort"

	"github.com/nicheclub/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	OrderCount        int             `json:"order_count"`
	PaidOrderCount    int             `json:"paid_order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	CustomerCount     int             `json:"customer_count"`
}

type DailyRevenue struct {
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

type ProductRevenue struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Summarize counts every order but attributes revenue only to paid ones, so
// abandoned checkouts never inflate the numbers.
func Summarize(orders []models.Order, customers []models.Customer) Summary {
	s := Summary{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		CustomerCount:     len(customers),
		OrderCount:        len(orders),
	}

	for _, order := range orders {
		if order.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		s.PaidOrderCount++
		s.TotalRevenue = s.TotalRevenue.Add(order.Total)
	}

	if s.PaidOrderCount > 0 {
		s.AverageOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.PaidOrderCount))).Round(2)
	}

	return s
}

// RevenueByDay buckets paid orders by calendar day (UTC), newest day first.
func RevenueByDay(orders []models.Order) []DailyRevenue {
	byDay := make(map[string]*DailyRevenue)

	for _, order := range orders {
		if order.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		day := order.CreatedAt.UTC().Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &DailyRevenue{Day: day, Revenue: decimal.Zero}
			byDay[day] = entry
		}
		entry.Revenue = entry.Revenue.Add(order.Total)
		entry.Orders++
	}

	out := make([]DailyRevenue, 0, len(byDay))
	for _, entry := range byDay {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })

	return out
}

// TopProducts ranks products by revenue across paid orders' item snapshots.
func TopProducts(orders []models.Order, limit int) []ProductRevenue {
	byProduct := make(map[string]*ProductRevenue)

	for _, order := range orders {
		if order.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		for _, item := range order.Items {
			entry, ok := byProduct[item.ProductID]
			if !ok {
				entry = &ProductRevenue{ProductID: item.ProductID, Name: item.Name, Revenue: decimal.Zero}
				byProduct[item.ProductID] = entry
			}
			entry.Units += item.Quantity
			entry.Revenue = entry.Revenue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	out := make([]ProductRevenue, 0, len(byProduct))
	for _, entry := range byProduct {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].ProductID < out[j].ProductID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RecentOrders returns the newest orders first, capped at limit.
func RecentOrders(orders []models.Order, limit int) []models.Order {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
