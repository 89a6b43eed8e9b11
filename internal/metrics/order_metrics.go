package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты операций для label "result".
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// OrderMetrics содержит метрики сервиса заказов.
type OrderMetrics struct {
	ordersCreated      prometheus.Counter
	statusChanges      *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	validationDuration prometheus.Histogram
	validationFailures *prometheus.CounterVec
}

// NewOrderMetrics регистрирует метрики в глобальном registry.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer регистрирует метрики в переданном registry.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders persisted",
		})),
		statusChanges: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_status_changes_total",
			Help: "Total number of order status changes grouped by outcome",
		}, []string{"outcome"})),
		operationDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orders_operation_duration_seconds",
			Help:    "Duration of order operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "result"})),
		validationDuration: register(registerer, prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orders_product_validation_duration_seconds",
			Help:    "Duration of remote product validation calls in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		})),
		validationFailures: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_product_validation_failures_total",
			Help: "Total number of failed product validations grouped by error kind",
		}, []string{"kind"})),
	}
}

// register регистрирует коллектор; при повторной регистрации возвращает уже существующий.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) C {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", alreadyRegistered.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// RecordStatusChange учитывает смену статуса; noop=true для идемпотентного повтора.
func (m *OrderMetrics) RecordStatusChange(noop bool) {
	if m == nil {
		return
	}
	outcome := "updated"
	if noop {
		outcome = "noop"
	}
	m.statusChanges.WithLabelValues(outcome).Inc()
}

// ObserveOperation записывает длительность операции движка заказов.
func (m *OrderMetrics) ObserveOperation(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(operation, resultLabel(err)).Observe(duration.Seconds())
}

// ObserveValidation записывает длительность вызова каталога.
func (m *OrderMetrics) ObserveValidation(duration time.Duration) {
	if m == nil {
		return
	}
	m.validationDuration.Observe(duration.Seconds())
}

// RecordValidationFailure учитывает неудачную валидацию товаров.
func (m *OrderMetrics) RecordValidationFailure(kind string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(kind).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
