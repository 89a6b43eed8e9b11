package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestNewOrderMetricsWithRegisterer(t *testing.T) {
	m := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	if m.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if m.statusChanges == nil {
		t.Error("statusChanges counter vec should not be nil")
	}
	if m.operationDuration == nil {
		t.Error("operationDuration histogram vec should not be nil")
	}
	if m.validationDuration == nil {
		t.Error("validationDuration histogram should not be nil")
	}
	if m.validationFailures == nil {
		t.Error("validationFailures counter vec should not be nil")
	}
}

func TestNewOrderMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewOrderMetricsWithRegisterer(reg)
	second := NewOrderMetricsWithRegisterer(reg)

	first.RecordOrderCreated()
	second.RecordOrderCreated()

	if got := counterValue(t, first.ordersCreated); got != 2 {
		t.Errorf("expected shared counter value 2, got %f", got)
	}
}

func TestRecordStatusChange(t *testing.T) {
	m := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	m.RecordStatusChange(true)
	m.RecordStatusChange(false)
	m.RecordStatusChange(false)

	if got := counterValue(t, m.statusChanges.WithLabelValues("noop")); got != 1 {
		t.Errorf("expected noop=1, got %f", got)
	}
	if got := counterValue(t, m.statusChanges.WithLabelValues("updated")); got != 2 {
		t.Errorf("expected updated=2, got %f", got)
	}
}

func TestObserveOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetricsWithRegisterer(reg)

	m.ObserveOperation("create", nil, 10*time.Millisecond)
	m.ObserveOperation("create", errors.New("boom"), 20*time.Millisecond)
	m.ObserveValidation(5 * time.Millisecond)
	m.RecordValidationFailure("ProductNotFound")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := map[string]bool{}
	for _, family := range families {
		found[family.GetName()] = true
	}
	for _, name := range []string{
		"orders_operation_duration_seconds",
		"orders_product_validation_duration_seconds",
		"orders_product_validation_failures_total",
	} {
		if !found[name] {
			t.Errorf("expected metric family %s to be gathered", name)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *OrderMetrics
	m.RecordOrderCreated()
	m.RecordStatusChange(true)
	m.ObserveOperation("find_one", nil, time.Millisecond)
	m.ObserveValidation(time.Millisecond)
	m.RecordValidationFailure("x")
}
