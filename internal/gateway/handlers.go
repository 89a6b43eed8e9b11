package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	ordersv1 "github.com/vladislavdragonenkov/orders/proto/orders/v1"
)

// OrdersAPI: вызовы сервиса заказов, которые нужны шлюзу.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, req *ordersv1.CreateOrderRequest) (*ordersv1.Order, error)
	FindAllOrders(ctx context.Context, req *ordersv1.FindAllOrdersRequest) (*ordersv1.OrderList, error)
	FindOneOrder(ctx context.Context, req *ordersv1.FindOneOrderRequest) (*ordersv1.Order, error)
	ChangeOrderStatus(ctx context.Context, req *ordersv1.ChangeOrderStatusRequest) (*ordersv1.Order, error)
}

type createOrderItem struct {
	ProductID int64           `json:"productId" binding:"required,gt=0"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

type createOrderBody struct {
	Items []createOrderItem `json:"items" binding:"required,min=1,dive"`
}

type listOrdersQuery struct {
	Page   int    `form:"page" binding:"omitempty,gte=1"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,max=100"`
	Status string `form:"status"`
}

type orderURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type changeStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// OrderHandlers обслуживает HTTP-маршруты заказов.
type OrderHandlers struct {
	orders OrdersAPI
}

// NewOrderHandlers создаёт обработчики.
func NewOrderHandlers(orders OrdersAPI) *OrderHandlers {
	return &OrderHandlers{orders: orders}
}

// CreateOrder обрабатывает POST /orders.
func (h *OrderHandlers) CreateOrder(c *gin.Context) {
	var body createOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(err)
		return
	}

	req := &ordersv1.CreateOrderRequest{Items: make([]ordersv1.OrderItemInput, 0, len(body.Items))}
	for _, item := range body.Items {
		req.Items = append(req.Items, ordersv1.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// FindAllOrders обрабатывает GET /orders.
func (h *OrderHandlers) FindAllOrders(c *gin.Context) {
	var query listOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err)
		return
	}
	if query.Status != "" {
		if _, err := domain.ParseOrderStatus(query.Status); err != nil {
			_ = c.Error(err)
			return
		}
	}

	list, err := h.orders.FindAllOrders(c.Request.Context(), &ordersv1.FindAllOrdersRequest{
		Page:   query.Page,
		Limit:  query.Limit,
		Status: query.Status,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// FindOneOrder обрабатывает GET /orders/:id.
func (h *OrderHandlers) FindOneOrder(c *gin.Context) {
	var uri orderURI
	if err := c.ShouldBindUri(&uri); err != nil {
		_ = c.Error(err)
		return
	}

	order, err := h.orders.FindOneOrder(c.Request.Context(), &ordersv1.FindOneOrderRequest{ID: uri.ID})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ChangeOrderStatus обрабатывает PATCH /orders/:id.
func (h *OrderHandlers) ChangeOrderStatus(c *gin.Context) {
	var uri orderURI
	if err := c.ShouldBindUri(&uri); err != nil {
		_ = c.Error(err)
		return
	}
	var body changeStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(err)
		return
	}
	if _, err := domain.ParseOrderStatus(body.Status); err != nil {
		_ = c.Error(err)
		return
	}

	order, err := h.orders.ChangeOrderStatus(c.Request.Context(), &ordersv1.ChangeOrderStatusRequest{
		ID:     uri.ID,
		Status: body.Status,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}
