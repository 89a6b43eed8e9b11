package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/rpcerr"
)

// Failure: ошибка, дошедшая до HTTP-границы. Реализации: StructuredFailure и RawFailure.
type Failure interface {
	failure()
}

// StructuredFailure: объект, в котором есть и status, и message.
// Body отдаётся клиенту без изменений.
type StructuredFailure struct {
	Status  any
	Message any
	Body    map[string]any
}

// RawFailure: любое другое значение ошибки.
type RawFailure struct {
	Value any
}

func (StructuredFailure) failure() {}
func (RawFailure) failure()        {}

// Translate переводит Failure в HTTP-статус и тело ответа.
func Translate(f Failure) (int, any) {
	switch failure := f.(type) {
	case StructuredFailure:
		code, ok := rpcerr.CoerceStatus(failure.Status)
		if !ok {
			code = http.StatusBadRequest
		}
		body := failure.Body
		if body == nil {
			body = map[string]any{
				rpcerr.FieldStatus:  failure.Status,
				rpcerr.FieldMessage: failure.Message,
			}
		}
		return code, body
	case RawFailure:
		return http.StatusBadRequest, gin.H{
			rpcerr.FieldStatus:  http.StatusBadRequest,
			rpcerr.FieldMessage: failure.Value,
		}
	default:
		return http.StatusBadRequest, gin.H{
			rpcerr.FieldStatus:  http.StatusBadRequest,
			rpcerr.FieldMessage: "unexpected failure",
		}
	}
}

// FailureFromError разбирает ошибку вызова сервиса или привязки запроса.
func FailureFromError(err error) Failure {
	if appErr, ok := domain.AsError(err); ok {
		return StructuredFailure{
			Status:  appErr.Status,
			Message: appErr.Message,
			Body: map[string]any{
				rpcerr.FieldStatus:  appErr.Status,
				rpcerr.FieldMessage: appErr.Message,
			},
		}
	}

	if payload, ok := rpcerr.Payload(err); ok {
		if rpcerr.IsStructured(payload) {
			return StructuredFailure{
				Status:  payload[rpcerr.FieldStatus],
				Message: payload[rpcerr.FieldMessage],
				Body:    payload,
			}
		}
		return RawFailure{Value: payload}
	}

	if st, ok := status.FromError(err); ok {
		return RawFailure{Value: st.Message()}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return RawFailure{Value: validationMessages(validationErrs)}
	}

	return RawFailure{Value: err.Error()}
}

// ErrorBoundary: единственное место, где ошибки обработчиков превращаются в HTTP-ответ.
func ErrorBoundary(logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		code, body := Translate(FailureFromError(err))

		entry := logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": code,
		})
		if code >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Info("request rejected")
		}

		c.AbortWithStatusJSON(code, body)
	}
}

func validationMessages(errs validator.ValidationErrors) []string {
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		messages = append(messages, describeFieldError(fieldErr))
	}
	return messages
}

func describeFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Namespace()
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "gt", "gte", "min":
		return field + " must be at least " + fieldErr.Param()
	case "uuid":
		return field + " must be a UUID"
	default:
		return field + " is invalid"
	}
}
