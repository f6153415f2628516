package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/observability"
)

func collectSums(t *testing.T, reader sdkmetric.Reader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	return sums
}

func TestOrderMetricsCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := observability.NewOrderMetricsWithMeter(provider.Meter("test"))
	require.NoError(t, err)

	metrics.OrderPlaced(ctx, "place")
	metrics.OrderPlaced(ctx, "quick")
	metrics.AssignmentAttempted(ctx, observability.OutcomeAssigned)
	metrics.NotificationSent(ctx)

	sums := collectSums(t, reader)
	assert.Equal(t, int64(2), sums["orders_placed_total"])
	assert.Equal(t, int64(1), sums["rider_assignments_total"])
	assert.Equal(t, int64(1), sums["notifications_sent_total"])
}

func TestNilOrderMetricsIsSafe(t *testing.T) {
	t.Parallel()

	var metrics *observability.OrderMetrics
	assert.NotPanics(t, func() {
		metrics.OrderPlaced(context.Background(), "place")
		metrics.AssignmentAttempted(context.Background(), observability.OutcomePending)
		metrics.NotificationSent(context.Background())
	})
}

func TestManagerWithEverythingOff(t *testing.T) {
	t.Parallel()

	lc := fxtest.NewLifecycle(t)
	cfg := config.Config{Observability: config.Observability{ServiceName: "fooddelivery", PrometheusPath: "/metrics"}}

	mgr, err := observability.NewManager(lc, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, mgr.TracingEnabled())
	assert.False(t, mgr.MetricsEnabled())
	assert.Nil(t, mgr.MetricsHandler())

	metrics, err := observability.NewOrderMetrics(mgr)
	require.NoError(t, err)
	metrics.OrderPlaced(context.Background(), "place")

	lc.RequireStart().RequireStop()
}
