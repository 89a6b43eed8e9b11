// Package productsv1 описывает контракт внешнего каталога products.v1.ProductsService.
package productsv1

import "github.com/shopspring/decimal"

// ValidateProductsRequest: JSON-массив идентификаторов товаров.
type ValidateProductsRequest []int64

// Product: запись каталога.
type Product struct {
	ID    int64           `json:"id"`
	Price decimal.Decimal `json:"price"`
	Name  string          `json:"name"`
}

// ValidateProductsResponse: найденные товары. Отсутствующие идентификаторы просто не попадают в ответ.
type ValidateProductsResponse []Product
