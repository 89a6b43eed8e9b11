// Package orders содержит движок агрегации заказов: создание, чтение, список и смену статуса.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/pagination"
)

const (
	opCreate       = "create"
	opFindOne      = "find_one"
	opFindAll      = "find_all"
	opChangeStatus = "change_status"

	msgCreateFailed       = "order creation failed, check server logs"
	msgLoadFailed         = "failed to load order"
	msgListFailed         = "failed to list orders"
	msgStatusUpdateFailed = "failed to update order status"
	msgValidationFailed   = "product validation failed"
)

// OrderList: страница заказов с метаданными.
type OrderList struct {
	Data []domain.Order
	Meta pagination.Meta
}

// Option настраивает Service.
type Option func(*Service)

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics задаёт метрики сервиса.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEventPublisher подключает публикацию событий заказов.
func WithEventPublisher(publisher domain.EventPublisher) Option {
	return func(s *Service) {
		s.events = publisher
	}
}

// Service оркестрирует хранилище заказов и удалённый каталог товаров.
// Цены берутся только из каталога, клиентские цены игнорируются.
type Service struct {
	repo     domain.OrderRepository
	products domain.ProductValidator
	events   domain.EventPublisher
	metrics  *metrics.OrderMetrics
	logger   *log.Entry
}

// NewService конструирует движок заказов.
func NewService(repo domain.OrderRepository, products domain.ProductValidator, options ...Option) *Service {
	s := &Service{
		repo:     repo,
		products: products,
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = log.WithField("component", "orders-service")
	}
	return s
}

// Create валидирует товары одним вызовом каталога, считает суммы по ценам каталога
// и атомарно сохраняет заказ вместе с позициями.
func (s *Service) Create(ctx context.Context, items []domain.ItemRequest) (order domain.Order, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation(opCreate, err, time.Since(start)) }()

	index, err := s.validate(ctx, distinctProductIDs(items))
	if err != nil {
		return domain.Order{}, err
	}

	newOrder := domain.NewOrder{Items: make([]domain.NewOrderItem, 0, len(items))}
	for _, item := range items {
		product, ok := index.Lookup(item.ProductID)
		if !ok {
			s.metrics.RecordValidationFailure(string(domain.KindProductNotFound))
			return domain.Order{}, domain.NewProductNotFound(item.ProductID)
		}

		newOrder.TotalAmount = newOrder.TotalAmount.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		newOrder.TotalItems += item.Quantity
		newOrder.Items = append(newOrder.Items, domain.NewOrderItem{
			ProductID: item.ProductID,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	created, err := s.repo.CreateWithItems(ctx, newOrder)
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"operation":   opCreate,
			"total_items": newOrder.TotalItems,
		}).Error("failed to persist order")
		return domain.Order{}, domain.NewPersistenceFailure(msgCreateFailed, err)
	}

	// Имена берём из того же ответа каталога, второго вызова нет.
	created.Items, err = decorate(created.Items, index)
	if err != nil {
		return domain.Order{}, err
	}

	s.metrics.RecordOrderCreated()
	s.publish(ctx, domain.EventOrderCreated, created)

	s.logger.WithFields(log.Fields{
		"order_id":     created.ID,
		"total_items":  created.TotalItems,
		"total_amount": created.TotalAmount.String(),
	}).Info("order created")

	return created, nil
}

// FindOne возвращает заказ, обогащённый актуальными названиями товаров.
func (s *Service) FindOne(ctx context.Context, id string) (order domain.Order, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation(opFindOne, err, time.Since(start)) }()

	return s.findOne(ctx, id)
}

// FindAll возвращает страницу заказов без обогащения.
func (s *Service) FindAll(ctx context.Context, req pagination.Request) (list OrderList, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation(opFindAll, err, time.Since(start)) }()

	req = pagination.Normalize(req)
	filter := req.Filter()

	// Подсчёт и выборка не в одной транзакции: при конкурентной записи total может разойтись с data.
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.WithError(err).WithField("operation", opFindAll).Error("failed to count orders")
		return OrderList{}, domain.NewPersistenceFailure(msgListFailed, err)
	}

	window, meta := pagination.Compute(req.Page, req.Limit, total)
	orders, err := s.repo.FindPage(ctx, window.Skip, window.Take, filter)
	if err != nil {
		s.logger.WithError(err).WithField("operation", opFindAll).Error("failed to fetch orders page")
		return OrderList{}, domain.NewPersistenceFailure(msgListFailed, err)
	}

	return OrderList{Data: orders, Meta: meta}, nil
}

// ChangeStatus меняет статус заказа. Повтор с текущим статусом ничего не пишет
// и возвращает обогащённый заказ; после реального обновления возвращается запись хранилища.
func (s *Service) ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) (order domain.Order, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveOperation(opChangeStatus, err, time.Since(start)) }()

	current, err := s.findOne(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	if current.Status == status {
		s.metrics.RecordStatusChange(true)
		return current, nil
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, domain.NewOrderNotFound(id)
		}
		s.logger.WithError(err).WithFields(log.Fields{
			"operation": opChangeStatus,
			"order_id":  id,
			"status":    status,
		}).Error("failed to update order status")
		return domain.Order{}, domain.NewPersistenceFailure(msgStatusUpdateFailed, err)
	}

	s.metrics.RecordStatusChange(false)
	s.publish(ctx, domain.EventOrderStatusChanged, updated)

	return updated, nil
}

func (s *Service) findOne(ctx context.Context, id string) (domain.Order, error) {
	order, err := s.repo.FindWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, domain.NewOrderNotFound(id)
		}
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order")
		return domain.Order{}, domain.NewPersistenceFailure(msgLoadFailed, err)
	}

	ids := order.ProductIDs()
	if len(ids) == 0 {
		return order, nil
	}

	index, err := s.validate(ctx, ids)
	if err != nil {
		return domain.Order{}, err
	}

	order.Items, err = decorate(order.Items, index)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Warn("catalog no longer knows an ordered product")
		return domain.Order{}, err
	}

	return order, nil
}

// validate выполняет ровно один вызов каталога и индексирует ответ.
func (s *Service) validate(ctx context.Context, ids []int64) (domain.ProductIndex, error) {
	start := time.Now()
	products, err := s.products.ValidateProducts(ctx, ids)
	s.metrics.ObserveValidation(time.Since(start))
	if err != nil {
		appErr, ok := domain.AsError(err)
		if !ok {
			appErr = domain.NewValidationRPCFailure(0, msgValidationFailed, err)
		}
		s.metrics.RecordValidationFailure(string(appErr.Kind))
		s.logger.WithError(err).WithField("product_ids", ids).Warn("product validation failed")
		return nil, appErr
	}
	return domain.IndexProducts(products), nil
}

func (s *Service) publish(ctx context.Context, eventType domain.EventType, order domain.Order) {
	if s.events == nil {
		return
	}

	event := domain.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		Status:     order.Status,
		TotalItems: order.TotalItems,
		Occurred:   time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"event":    eventType,
		}).Warn("failed to publish order event")
	}
}

// decorate добавляет к позициям названия товаров из ответа каталога.
func decorate(items []domain.OrderItem, index domain.ProductIndex) ([]domain.OrderItem, error) {
	result := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := index.Lookup(item.ProductID)
		if !ok {
			return nil, domain.NewProductNotFound(item.ProductID)
		}
		item.Name = product.Name
		result = append(result, item)
	}
	return result, nil
}

func distinctProductIDs(items []domain.ItemRequest) []int64 {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
