package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/pizzaria/internal/domain"
)

// flavorIDs принимает idsabor как число или как массив чисел.
type flavorIDs []int64

func (f *flavorIDs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var ids []int64
		if err := json.Unmarshal(data, &ids); err != nil {
			return fmt.Errorf("idsabor: %w", err)
		}
		*f = ids
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("idsabor: %w", err)
	}
	*f = flavorIDs{id}
	return nil
}

type cartItem struct {
	Type   string `json:"tipo"`
	Flavor struct {
		IDs flavorIDs `json:"idsabor"`
	} `json:"sabor"`
}

// cartRequest: тело оформления корзины с витрины.
type cartRequest struct {
	CustomerID int64           `json:"idCliente"`
	PlacedAt   time.Time       `json:"dataPedido"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Items      []cartItem      `json:"itensPedido"`
}

// toOrder раскладывает корзину в заказ: по одной позиции на каждый вкус.
func (c cartRequest) toOrder() *domain.Order {
	order := &domain.Order{
		CustomerID: c.CustomerID,
		PlacedAt:   c.PlacedAt,
		Status:     c.Status,
		Total:      c.Total,
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	for _, item := range c.Items {
		for _, id := range item.Flavor.IDs {
			order.Items = append(order.Items, domain.OrderItem{Type: item.Type, Flavor: domain.Flavor{ID: id}})
		}
	}
	return order
}
