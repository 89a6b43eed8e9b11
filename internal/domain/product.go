package domain

import "github.com/shopspring/decimal"

// Product: запись внешнего каталога. Локально не хранится.
type Product struct {
	ID    int64
	Price decimal.Decimal
	Name  string
}

// ProductIndex индексирует результат валидации по идентификатору товара.
type ProductIndex map[int64]Product

// IndexProducts строит индекс по списку товаров.
func IndexProducts(products []Product) ProductIndex {
	index := make(ProductIndex, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// Lookup возвращает товар по идентификатору.
func (idx ProductIndex) Lookup(id int64) (Product, bool) {
	p, ok := idx[id]
	return p, ok
}
