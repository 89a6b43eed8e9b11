package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending: заказ создан и ожидает доставки.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusDelivered: заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusCancelled: заказ отменён.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses перечисляет все допустимые статусы в порядке объявления.
var OrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled}

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	ID string
	// ProductID: идентификатор товара во внешнем каталоге, не локальный внешний ключ.
	ProductID int64
	// Price: снимок цены каталога на момент создания заказа, позже не пересчитывается.
	Price    decimal.Decimal
	Quantity int
	// Name заполняется только при обогащении данными каталога и никогда не сохраняется.
	Name string
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	ID          string
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      OrderStatus
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemRequest: позиция во входящем запросе на создание заказа.
type ItemRequest struct {
	ProductID int64
	Quantity  int
	// Price, присланная клиентом, не используется при расчёте сумм.
	Price decimal.Decimal
}

// NewOrder: данные для атомарного создания заказа вместе с позициями.
type NewOrder struct {
	TotalAmount decimal.Decimal
	TotalItems  int
	Items       []NewOrderItem
}

// NewOrderItem: позиция, сохраняемая вместе с заказом.
type NewOrderItem struct {
	ProductID int64
	Price     decimal.Decimal
	Quantity  int
}

// OrderFilter ограничивает выборку заказов. Пустой Status означает "без фильтра".
type OrderFilter struct {
	Status OrderStatus
}

// ProductIDs возвращает уникальные идентификаторы товаров в порядке первого появления.
func (o Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Items))
	seen := make(map[int64]struct{}, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// ParseOrderStatus разбирает статус из внешнего запроса.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", NewInvalidArgument(InvalidStatusMessage())
	}
	return status, nil
}

// InvalidStatusMessage перечисляет допустимые статусы для сообщений об ошибке.
func InvalidStatusMessage() string {
	names := make([]string, 0, len(OrderStatuses))
	for _, status := range OrderStatuses {
		names = append(names, string(status))
	}
	return "Valid status are " + strings.Join(names, ",")
}
