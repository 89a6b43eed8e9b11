// Package rpcerr переносит структурированные ошибки {status, message} через gRPC-статус.
package rpcerr

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const (
	// FieldStatus и FieldMessage: обязательные поля структурированной ошибки.
	FieldStatus  = "status"
	FieldMessage = "message"

	msgInternal = "internal server error"
)

// ToStatus превращает ошибку приложения в gRPC-статус с деталью {status, message}.
// Ошибки, уже являющиеся gRPC-статусом, возвращаются как есть; прочие скрываются за Internal.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}

	appErr, ok := domain.AsError(err)
	if !ok {
		if st, isStatus := status.FromError(err); isStatus {
			return st.Err()
		}
		return status.Error(codes.Internal, msgInternal)
	}

	return WithPayload(CodeFromHTTP(appErr.Status), map[string]any{
		FieldStatus:  appErr.Status,
		FieldMessage: appErr.Message,
	})
}

// WithPayload собирает статус с произвольным объектом в деталях.
func WithPayload(code codes.Code, payload map[string]any) error {
	message, _ := payload[FieldMessage].(string)
	st := status.New(code, message)

	detail, err := structpb.NewStruct(payload)
	if err != nil {
		return st.Err()
	}
	withDetail, err := st.WithDetails(detail)
	if err != nil {
		return st.Err()
	}
	return withDetail.Err()
}

// Payload извлекает объект из деталей gRPC-статуса.
func Payload(err error) (map[string]any, bool) {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return nil, false
	}
	for _, detail := range st.Details() {
		if payload, ok := detail.(*structpb.Struct); ok {
			return payload.AsMap(), true
		}
	}
	return nil, false
}

// IsStructured сообщает, что объект несёт оба поля status и message.
func IsStructured(payload map[string]any) bool {
	if payload == nil {
		return false
	}
	_, hasStatus := payload[FieldStatus]
	_, hasMessage := payload[FieldMessage]
	return hasStatus && hasMessage
}

// CoerceStatus приводит значение поля status к HTTP-коду.
// Числа и числовые строки принимаются; всё остальное, как и коды вне 100..599, даёт false.
func CoerceStatus(value any) (int, bool) {
	var number float64
	switch v := value.(type) {
	case int:
		number = float64(v)
	case int32:
		number = float64(v)
	case int64:
		number = float64(v)
	case float64:
		number = v
	case float32:
		number = float64(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			// Пустая строка не является кодом.
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		number = parsed
	default:
		return 0, false
	}

	if math.IsNaN(number) || math.IsInf(number, 0) || number != math.Trunc(number) {
		return 0, false
	}
	code := int(number)
	if code < 100 || code > 599 {
		return 0, false
	}
	return code, true
}

// CodeFromHTTP подбирает gRPC-код для HTTP-статуса ошибки.
func CodeFromHTTP(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return codes.InvalidArgument
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	case http.StatusInternalServerError:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
