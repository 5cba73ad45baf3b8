package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRow: одна строка плоского JOIN заказов, позиций и вкусов.
type OrderRow struct {
	OrderID    int64
	CustomerID int64
	PlacedAt   time.Time
	Status     string
	Total      decimal.Decimal
	ItemID     int64
	ItemType   string
	FlavorID   int64
	FlavorName string
}

// GroupOrderRows собирает плоские строки в дерево заказ → позиции → вкус.
//
// Строки должны идти по возрастанию OrderID, затем ItemID. Заказы возвращаются в порядке
// первого появления, скалярные поля (включая Total) берутся из первой строки заказа.
func GroupOrderRows(rows []OrderRow) []Order {
	orders := make([]Order, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		pos, ok := index[row.OrderID]
		if !ok {
			orders = append(orders, Order{
				ID:         row.OrderID,
				CustomerID: row.CustomerID,
				PlacedAt:   row.PlacedAt,
				Status:     row.Status,
				Total:      row.Total,
				Items:      make([]OrderItem, 0, 1),
			})
			pos = len(orders) - 1
			index[row.OrderID] = pos
		}

		orders[pos].Items = append(orders[pos].Items, OrderItem{
			ID:      row.ItemID,
			OrderID: row.OrderID,
			Type:    row.ItemType,
			Flavor:  Flavor{ID: row.FlavorID, Name: row.FlavorName},
		})
	}

	return orders
}
