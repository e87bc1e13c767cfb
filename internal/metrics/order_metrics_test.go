package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, registry *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestOrderMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newOrderMetricsWithRegisterer(registry)

	m.IncOrderCreated()
	m.IncOrderCreated()
	m.IncStatusUpdated()

	created := gather(t, registry, "orders_created_total")
	require.NotNil(t, created)
	require.Equal(t, float64(2), created.GetMetric()[0].GetCounter().GetValue())

	updated := gather(t, registry, "orders_status_updates_total")
	require.NotNil(t, updated)
	require.Equal(t, float64(1), updated.GetMetric()[0].GetCounter().GetValue())
}

func TestOrderMetrics_RequestDuration(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newOrderMetricsWithRegisterer(registry)

	m.ObserveRequest("create_order", 150*time.Millisecond)
	m.ObserveRequest("create_order", 250*time.Millisecond)

	family := gather(t, registry, "orders_request_duration_seconds")
	require.NotNil(t, family)
	require.Len(t, family.GetMetric(), 1)

	metric := family.GetMetric()[0]
	require.Equal(t, uint64(2), metric.GetHistogram().GetSampleCount())
	require.Len(t, metric.GetLabel(), 1)
	require.Equal(t, "operation", metric.GetLabel()[0].GetName())
	require.Equal(t, "create_order", metric.GetLabel()[0].GetValue())
}

func TestOrderMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *OrderMetrics

	m.IncOrderCreated()
	m.IncStatusUpdated()
	m.ObserveRequest("list_orders", time.Millisecond)
}

func TestOrderMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(registry)
	second := newOrderMetricsWithRegisterer(registry)

	first.IncOrderCreated()
	second.IncOrderCreated()

	family := gather(t, registry, "orders_created_total")
	require.NotNil(t, family)
	require.Equal(t, float64(2), family.GetMetric()[0].GetCounter().GetValue())
}
