// Package pagination вычисляет окно выборки и метаданные страницы.
package pagination

import (
	"math"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const (
	// DefaultPage: первая страница, нумерация с единицы.
	DefaultPage = 1
	// DefaultLimit: размер страницы по умолчанию.
	DefaultLimit = 10
	// MaxLimit: верхняя граница размера страницы на входе сервиса.
	MaxLimit = 100
)

// Request: параметры постраничной выборки заказов.
type Request struct {
	Page   int
	Limit  int
	Status domain.OrderStatus
}

// Window: окно выборки из хранилища.
type Window struct {
	Skip int
	Take int
}

// Meta описывает страницу в ответе.
type Meta struct {
	Total    int
	Page     int
	LastPage int
}

// Normalize подставляет значения по умолчанию для незаданных page и limit.
func Normalize(req Request) Request {
	if req.Page <= 0 {
		req.Page = DefaultPage
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	return req
}

// Filter возвращает фильтр хранилища, общий для подсчёта и выборки.
func (r Request) Filter() domain.OrderFilter {
	return domain.OrderFilter{Status: r.Status}
}

// WindowFor возвращает skip/take для страницы.
// При переполнении (page-1)*limit skip насыщается до math.MaxInt.
func WindowFor(page, limit int) Window {
	if page > 1 && limit > 0 && page-1 > math.MaxInt/limit {
		return Window{Skip: math.MaxInt, Take: limit}
	}
	return Window{Skip: (page - 1) * limit, Take: limit}
}

// LastPage возвращает ceil(total/limit); для total=0 это 0.
func LastPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Compute считает окно и метаданные для нормализованного запроса.
func Compute(page, limit, total int) (Window, Meta) {
	return WindowFor(page, limit), Meta{
		Total:    total,
		Page:     page,
		LastPage: LastPage(total, limit),
	}
}
