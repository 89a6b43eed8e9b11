package domain

import (
	"context"
	"time"
)

// ProductValidator описывает удалённый сервис каталога товаров.
type ProductValidator interface {
	// ValidateProducts возвращает записи каталога для переданных идентификаторов
	// или ошибку ValidationRpcFailure, если вызов не удался целиком.
	ValidateProducts(ctx context.Context, ids []int64) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Count возвращает количество заказов, подходящих под фильтр.
	Count(ctx context.Context, filter OrderFilter) (int, error)
	// CreateWithItems атомарно создаёт заказ вместе со всеми позициями.
	CreateWithItems(ctx context.Context, order NewOrder) (Order, error)
	// FindPage возвращает окно заказов без обогащения, отфильтрованное так же, как Count.
	FindPage(ctx context.Context, skip, take int, filter OrderFilter) ([]Order, error)
	// FindWithItems возвращает заказ с позициями или ErrOrderNotFound.
	FindWithItems(ctx context.Context, id string) (Order, error)
	// UpdateStatus меняет статус и возвращает обновлённую запись без позиций.
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (Order, error)
}

// EventType определяет тип доменного события заказа.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// OrderEvent: событие жизненного цикла заказа для внешних подписчиков.
type OrderEvent struct {
	Type       EventType
	OrderID    string
	Status     OrderStatus
	TotalItems int
	Occurred   time.Time
}

// EventPublisher публикует события заказов. Публикация не влияет на результат операции.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
