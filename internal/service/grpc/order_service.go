package grpcsvc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/pagination"
	"github.com/vladislavdragonenkov/orders/internal/rpcerr"
	"github.com/vladislavdragonenkov/orders/internal/service/orders"
	ordersv1 "github.com/vladislavdragonenkov/orders/proto/orders/v1"
)

// OrderEngine: операции движка заказов, которые публикует gRPC API.
type OrderEngine interface {
	Create(ctx context.Context, items []domain.ItemRequest) (domain.Order, error)
	FindOne(ctx context.Context, id string) (domain.Order, error)
	FindAll(ctx context.Context, req pagination.Request) (orders.OrderList, error)
	ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error)
}

// OrderService реализует orders.v1.OrdersService поверх движка заказов.
type OrderService struct {
	ordersv1.UnimplementedOrdersServiceServer

	engine OrderEngine
	logger *log.Entry
}

// NewOrderService конструирует сервис с зависимостями.
func NewOrderService(engine OrderEngine, logger *log.Entry) *OrderService {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &OrderService{
		engine: engine,
		logger: logger,
	}
}

// CreateOrder создаёт заказ.
func (s *OrderService) CreateOrder(ctx context.Context, req *ordersv1.CreateOrderRequest) (*ordersv1.Order, error) {
	if len(req.GetItems()) == 0 {
		return nil, s.fail("CreateOrder", domain.NewInvalidArgument("order must contain at least one item"))
	}

	items := make([]domain.ItemRequest, 0, len(req.Items))
	for idx, item := range req.Items {
		if item.ProductID <= 0 {
			return nil, s.fail("CreateOrder", domain.NewInvalidArgument(fmt.Sprintf("items[%d].productId must be a positive number", idx)))
		}
		if item.Quantity <= 0 {
			return nil, s.fail("CreateOrder", domain.NewInvalidArgument(fmt.Sprintf("items[%d].quantity must be a positive number", idx)))
		}
		items = append(items, domain.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := s.engine.Create(ctx, items)
	if err != nil {
		return nil, s.fail("CreateOrder", err)
	}
	return toWireOrder(order), nil
}

// FindAllOrders возвращает страницу заказов.
func (s *OrderService) FindAllOrders(ctx context.Context, req *ordersv1.FindAllOrdersRequest) (*ordersv1.OrderList, error) {
	if req == nil {
		req = &ordersv1.FindAllOrdersRequest{}
	}
	if req.Page < 0 {
		return nil, s.fail("FindAllOrders", domain.NewInvalidArgument("page must be a positive number"))
	}
	if req.Limit < 0 {
		return nil, s.fail("FindAllOrders", domain.NewInvalidArgument("limit must be a positive number"))
	}
	if req.Limit > pagination.MaxLimit {
		return nil, s.fail("FindAllOrders", domain.NewInvalidArgument(fmt.Sprintf("limit must not be greater than %d", pagination.MaxLimit)))
	}

	query := pagination.Request{Page: req.Page, Limit: req.Limit}
	if req.Status != "" {
		status, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			return nil, s.fail("FindAllOrders", err)
		}
		query.Status = status
	}

	list, err := s.engine.FindAll(ctx, query)
	if err != nil {
		return nil, s.fail("FindAllOrders", err)
	}

	result := &ordersv1.OrderList{
		Data: make([]ordersv1.Order, 0, len(list.Data)),
		Meta: ordersv1.PageMeta{
			Total:    list.Meta.Total,
			Page:     list.Meta.Page,
			LastPage: list.Meta.LastPage,
		},
	}
	for _, order := range list.Data {
		result.Data = append(result.Data, *toWireOrder(order))
	}
	return result, nil
}

// FindOneOrder возвращает заказ с названиями товаров.
func (s *OrderService) FindOneOrder(ctx context.Context, req *ordersv1.FindOneOrderRequest) (*ordersv1.Order, error) {
	id, err := parseOrderID(req.GetID())
	if err != nil {
		return nil, s.fail("FindOneOrder", err)
	}

	order, err := s.engine.FindOne(ctx, id)
	if err != nil {
		return nil, s.fail("FindOneOrder", err)
	}
	return toWireOrder(order), nil
}

// ChangeOrderStatus меняет статус заказа.
func (s *OrderService) ChangeOrderStatus(ctx context.Context, req *ordersv1.ChangeOrderStatusRequest) (*ordersv1.Order, error) {
	id, err := parseOrderID(req.GetID())
	if err != nil {
		return nil, s.fail("ChangeOrderStatus", err)
	}
	status, err := domain.ParseOrderStatus(req.GetStatus())
	if err != nil {
		return nil, s.fail("ChangeOrderStatus", err)
	}

	order, err := s.engine.ChangeStatus(ctx, id, status)
	if err != nil {
		return nil, s.fail("ChangeOrderStatus", err)
	}
	return toWireOrder(order), nil
}

// fail логирует ошибку и переводит её в gRPC-статус.
func (s *OrderService) fail(operation string, err error) error {
	entry := s.logger.WithError(err).WithField("operation", operation)
	appErr, ok := domain.AsError(err)
	if !ok {
		entry.Error("request failed with unexpected error")
		return rpcerr.ToStatus(err)
	}

	entry = entry.WithFields(log.Fields{
		"kind":   appErr.Kind,
		"status": appErr.Status,
	})
	// Сбои хранилища пишем как Error, ошибки запроса как Warn.
	if domain.IsKind(err, domain.KindPersistenceFailure) {
		entry.Error("request failed")
	} else {
		entry.Warn("request failed")
	}
	return rpcerr.ToStatus(err)
}

func parseOrderID(raw string) (string, error) {
	if raw == "" {
		return "", domain.NewInvalidArgument("id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domain.NewInvalidArgument("id must be a UUID")
	}
	return id.String(), nil
}

func toWireOrder(order domain.Order) *ordersv1.Order {
	result := &ordersv1.Order{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if len(order.Items) > 0 {
		result.Items = make([]ordersv1.OrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			result.Items = append(result.Items, ordersv1.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Name:      item.Name,
			})
		}
	}
	return result
}
