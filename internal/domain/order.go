package domain

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultCustomerID: клиент, на которого оформляется заказ без указанного id_cliente.
const DefaultCustomerID int64 = 1

// Статусы, которые выставляет витрина пиццерии.
const (
	OrderStatusPending   = "PENDENTE"
	OrderStatusPreparing = "EM_PREPARO"
	OrderStatusDelivered = "ENTREGUE"
	OrderStatusCanceled  = "CANCELADO"
)

// Flavor: справочник вкусов пиццы (таблица sabores). Только чтение.
type Flavor struct {
	ID   int64  `json:"idsabor"`
	Name string `json:"sabor"`
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	ID int64 `json:"idItem"`
	// OrderID: ссылка на родительский заказ, выставляется при создании заказа.
	OrderID int64  `json:"idPedido"`
	Type    string `json:"tipo"`
	Flavor  Flavor `json:"sabor"`
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	ID int64 `json:"idPedido"`
	// CustomerID == 0 означает, что клиент не указан.
	CustomerID int64           `json:"idCliente"`
	PlacedAt   time.Time       `json:"dataPedido" validate:"required"`
	Status     string          `json:"status" validate:"required"`
	Total      decimal.Decimal `json:"total" validate:"gte=0"`
	Items      []OrderItem     `json:"itensPedido"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal проверяется как число, иначе валидатор уходит внутрь структуры.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate проверяет поля, обязательные для записи заказа в хранилище.
func (o *Order) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%w: field %s failed on %q", ErrInvalidOrder, fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
}

// CustomerOrDefault возвращает id клиента или fallback, если клиент не указан.
func (o *Order) CustomerOrDefault(fallback int64) int64 {
	if o.CustomerID != 0 {
		return o.CustomerID
	}
	return fallback
}

// AttachItems проставляет позициям ссылку на заказ.
func (o *Order) AttachItems() {
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
}
