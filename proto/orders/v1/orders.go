// Package ordersv1 описывает контракт orders.v1.OrdersService: сообщения и gRPC-обвязку
// поверх JSON-кодека.
package ordersv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput: позиция в запросе на создание заказа.
type OrderItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	// Price принимается для совместимости клиентов и не участвует в расчётах.
	Price decimal.Decimal `json:"price"`
}

// CreateOrderRequest: запрос на создание заказа.
type CreateOrderRequest struct {
	Items []OrderItemInput `json:"items"`
}

// GetItems возвращает позиции запроса, безопасно для nil.
func (r *CreateOrderRequest) GetItems() []OrderItemInput {
	if r == nil {
		return nil
	}
	return r.Items
}

// FindAllOrdersRequest: запрос страницы заказов. Нулевые page и limit означают значения по умолчанию.
type FindAllOrdersRequest struct {
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Status string `json:"status,omitempty"`
}

// FindOneOrderRequest: запрос заказа по идентификатору.
type FindOneOrderRequest struct {
	ID string `json:"id"`
}

// GetID возвращает идентификатор, безопасно для nil.
func (r *FindOneOrderRequest) GetID() string {
	if r == nil {
		return ""
	}
	return r.ID
}

// ChangeOrderStatusRequest: запрос смены статуса.
type ChangeOrderStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// GetID возвращает идентификатор, безопасно для nil.
func (r *ChangeOrderStatusRequest) GetID() string {
	if r == nil {
		return ""
	}
	return r.ID
}

// GetStatus возвращает статус, безопасно для nil.
func (r *ChangeOrderStatusRequest) GetStatus() string {
	if r == nil {
		return ""
	}
	return r.Status
}

// OrderItem: позиция заказа в ответе. Name заполнен только у обогащённых заказов.
type OrderItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name,omitempty"`
}

// Order: заказ в ответе.
type Order struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Items       []OrderItem     `json:"items,omitempty"`
}

// PageMeta: метаданные страницы.
type PageMeta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	LastPage int `json:"lastPage"`
}

// OrderList: страница заказов.
type OrderList struct {
	Data []Order  `json:"data"`
	Meta PageMeta `json:"meta"`
}
