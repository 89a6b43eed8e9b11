package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrOrderNotFound возвращается хранилищем, если заказ не найден.
	ErrOrderNotFound = errors.New("order not found")
)

// ErrorKind: дискриминант структурированной ошибки приложения.
type ErrorKind string

const (
	// KindValidationRPCFailure: вызов сервиса каталога не удалось выполнить.
	KindValidationRPCFailure ErrorKind = "ValidationRpcFailure"
	// KindProductNotFound: товара из заказа нет в ответе каталога.
	KindProductNotFound ErrorKind = "ProductNotFound"
	// KindOrderNotFound: заказ с указанным идентификатором отсутствует.
	KindOrderNotFound ErrorKind = "OrderNotFound"
	// KindPersistenceFailure: сбой хранилища; детали только в логах.
	KindPersistenceFailure ErrorKind = "PersistenceFailure"
	// KindInvalidArgument: запрос не удалось разобрать.
	KindInvalidArgument ErrorKind = "InvalidArgument"
)

// Error: структурированная ошибка, которая создаётся один раз в месте обнаружения
// и без изменений доходит до границы транспорта.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap отдаёт исходную причину для логов и errors.Is.
func (e *Error) Unwrap() error {
	return e.cause
}

// AsError извлекает *Error из цепочки ошибок.
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind проверяет, что err является структурированной ошибкой указанного вида.
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsError(err)
	return ok && appErr.Kind == kind
}

// NewProductNotFound сообщает об отсутствии товара в каталоге.
func NewProductNotFound(productID int64) *Error {
	return &Error{
		Kind:    KindProductNotFound,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Product with id %d not found", productID),
	}
}

// NewOrderNotFound сообщает об отсутствии заказа.
func NewOrderNotFound(orderID string) *Error {
	return &Error{
		Kind:    KindOrderNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("Order %s not found", orderID),
		cause:   ErrOrderNotFound,
	}
}

// NewPersistenceFailure скрывает детали хранилища за общим сообщением.
func NewPersistenceFailure(message string, cause error) *Error {
	return &Error{
		Kind:    KindPersistenceFailure,
		Status:  http.StatusBadRequest,
		Message: message,
		cause:   cause,
	}
}

// NewValidationRPCFailure описывает неудачный вызов каталога.
// Статус удалённой стороны сохраняется, если она его прислала.
func NewValidationRPCFailure(status int, message string, cause error) *Error {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return &Error{
		Kind:    KindValidationRPCFailure,
		Status:  status,
		Message: message,
		cause:   cause,
	}
}

// NewInvalidArgument описывает некорректный запрос.
func NewInvalidArgument(message string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}
