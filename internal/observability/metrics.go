package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/Additional-Code/fooddelivery/orders"

// Assignment outcomes recorded by OrderMetrics.
const (
	OutcomeAssigned = "assigned"
	OutcomePending  = "pending"
)

// OrderMetrics counts order lifecycle events. A nil *OrderMetrics records
// nothing.
type OrderMetrics struct {
	placed        metric.Int64Counter
	assignments   metric.Int64Counter
	notifications metric.Int64Counter
}

// NewOrderMetrics registers the order instruments on the manager's meter.
func NewOrderMetrics(mgr *Manager) (*OrderMetrics, error) {
	return NewOrderMetricsWithMeter(mgr.Meter(meterName))
}

// NewOrderMetricsWithMeter registers the order instruments on meter.
func NewOrderMetricsWithMeter(meter metric.Meter) (*OrderMetrics, error) {
	placed, err := meter.Int64Counter("orders_placed_total",
		metric.WithDescription("Orders persisted, by flow."))
	if err != nil {
		return nil, err
	}
	assignments, err := meter.Int64Counter("rider_assignments_total",
		metric.WithDescription("Rider assignment attempts, by outcome."))
	if err != nil {
		return nil, err
	}
	notifications, err := meter.Int64Counter("notifications_sent_total",
		metric.WithDescription("Notifications written for users."))
	if err != nil {
		return nil, err
	}
	return &OrderMetrics{placed: placed, assignments: assignments, notifications: notifications}, nil
}

// OrderPlaced counts a persisted order. flow is "place" or "quick".
func (m *OrderMetrics) OrderPlaced(ctx context.Context, flow string) {
	if m == nil {
		return
	}
	m.placed.Add(ctx, 1, metric.WithAttributes(attribute.String("flow", flow)))
}

// AssignmentAttempted counts one matching attempt and its outcome.
func (m *OrderMetrics) AssignmentAttempted(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.assignments.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// NotificationSent counts a stored notification.
func (m *OrderMetrics) NotificationSent(ctx context.Context) {
	if m == nil {
		return
	}
	m.notifications.Add(ctx, 1)
}
