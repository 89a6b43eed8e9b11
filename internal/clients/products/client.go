// Package products реализует проверку товаров через удалённый каталог.
package products

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/rpcerr"
	productsv1 "github.com/vladislavdragonenkov/orders/proto/products/v1"
)

// DefaultTimeout ограничивает один вызов каталога.
const DefaultTimeout = 5 * time.Second

const msgCatalogUnavailable = "product validation failed"

// Client: адаптер ProductValidator поверх products.v1.ProductsService.
type Client struct {
	api     productsv1.ProductsServiceClient
	timeout time.Duration
	logger  *log.Entry
}

// NewClient создаёт клиента каталога. timeout <= 0 заменяется на DefaultTimeout.
func NewClient(conn grpc.ClientConnInterface, timeout time.Duration, logger *log.Entry) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.WithField("component", "products-client")
	}
	return &Client{
		api:     productsv1.NewProductsServiceClient(conn),
		timeout: timeout,
		logger:  logger,
	}
}

// ValidateProducts отправляет список идентификаторов одним запросом.
// Любая ошибка транспорта или каталога превращается в ValidationRpcFailure.
func (c *Client) ValidateProducts(ctx context.Context, ids []int64) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.ValidateProducts(ctx, productsv1.ValidateProductsRequest(ids))
	if err != nil {
		c.logger.WithError(err).WithField("product_ids", ids).Warn("product catalog call failed")
		return nil, translate(err)
	}

	result := make([]domain.Product, 0, len(resp))
	for _, product := range resp {
		result = append(result, domain.Product{
			ID:    product.ID,
			Price: product.Price,
			Name:  product.Name,
		})
	}
	return result, nil
}

// translate сохраняет status/message каталога, если он их прислал; иначе статус 400.
func translate(err error) error {
	if payload, ok := rpcerr.Payload(err); ok && rpcerr.IsStructured(payload) {
		code, _ := rpcerr.CoerceStatus(payload[rpcerr.FieldStatus])
		message, ok := payload[rpcerr.FieldMessage].(string)
		if !ok {
			message = fmt.Sprint(payload[rpcerr.FieldMessage])
		}
		return domain.NewValidationRPCFailure(code, message, err)
	}

	message := msgCatalogUnavailable
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown && st.Message() != "" {
		message = st.Message()
	}
	return domain.NewValidationRPCFailure(0, message, err)
}

var _ domain.ProductValidator = (*Client)(nil)
