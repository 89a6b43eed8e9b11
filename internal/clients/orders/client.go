// Package orders содержит клиент шлюза к сервису заказов.
package orders

import (
	"context"
	"time"

	"google.golang.org/grpc"

	ordersv1 "github.com/vladislavdragonenkov/orders/proto/orders/v1"
)

// DefaultTimeout ограничивает один вызов сервиса заказов.
const DefaultTimeout = 10 * time.Second

// Client добавляет таймаут к каждому вызову. Ошибки возвращаются без изменений,
// их разбирает граница трансляции ошибок шлюза.
type Client struct {
	api     ordersv1.OrdersServiceClient
	timeout time.Duration
}

// NewClient создаёт клиента поверх готового соединения.
func NewClient(conn grpc.ClientConnInterface, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		api:     ordersv1.NewOrdersServiceClient(conn),
		timeout: timeout,
	}
}

func (c *Client) CreateOrder(ctx context.Context, req *ordersv1.CreateOrderRequest) (*ordersv1.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.api.CreateOrder(ctx, req)
}

func (c *Client) FindAllOrders(ctx context.Context, req *ordersv1.FindAllOrdersRequest) (*ordersv1.OrderList, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.api.FindAllOrders(ctx, req)
}

func (c *Client) FindOneOrder(ctx context.Context, req *ordersv1.FindOneOrderRequest) (*ordersv1.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.api.FindOneOrder(ctx, req)
}

func (c *Client) ChangeOrderStatus(ctx context.Context, req *ordersv1.ChangeOrderStatusRequest) (*ordersv1.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.api.ChangeOrderStatus(ctx, req)
}
