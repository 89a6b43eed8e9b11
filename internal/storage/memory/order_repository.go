package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderRepositoryInMemory: in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	now    func() time.Time
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		orders: make(map[string]domain.Order),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Count возвращает количество заказов, подходящих под фильтр.
func (r *orderRepositoryInMemory) Count(_ context.Context, filter domain.OrderFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, order := range r.orders {
		if matches(order, filter) {
			count++
		}
	}
	return count, nil
}

// CreateWithItems сохраняет заказ и позиции под одной блокировкой.
func (r *orderRepositoryInMemory) CreateWithItems(ctx context.Context, order domain.NewOrder) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	now := r.now()
	created := domain.Order{
		ID:          uuid.NewString(),
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      domain.OrderStatusPending,
		Items:       make([]domain.OrderItem, 0, len(order.Items)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, item := range order.Items {
		created.Items = append(created.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	r.mu.Lock()
	r.orders[created.ID] = created
	r.mu.Unlock()

	return cloneOrder(created), nil
}

// FindPage возвращает окно заказов, упорядоченных по времени создания.
func (r *orderRepositoryInMemory) FindPage(_ context.Context, skip, take int, filter domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if matches(order, filter) {
			matched = append(matched, order)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) || take <= 0 {
		return []domain.Order{}, nil
	}
	end := skip + take
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]domain.Order, 0, end-skip)
	for _, order := range matched[skip:end] {
		page = append(page, cloneOrder(order))
	}
	return page, nil
}

// FindWithItems возвращает заказ или ErrOrderNotFound.
func (r *orderRepositoryInMemory) FindWithItems(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// UpdateStatus меняет статус и возвращает запись без позиций.
func (r *orderRepositoryInMemory) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = r.now()
	r.orders[id] = order

	updated := order
	updated.Items = nil
	return updated, nil
}

func matches(order domain.Order, filter domain.OrderFilter) bool {
	return filter.Status == "" || order.Status == filter.Status
}

// cloneOrder копирует позиции, чтобы вызывающий код не менял состояние репозитория.
func cloneOrder(order domain.Order) domain.Order {
	if order.Items != nil {
		items := make([]domain.OrderItem, len(order.Items))
		copy(items, order.Items)
		order.Items = items
	}
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
