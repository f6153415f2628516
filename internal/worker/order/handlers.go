// Package order holds the background handlers for order events.
package order

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/messaging"
	notificationsvc "github.com/Additional-Code/fooddelivery/internal/service/notification"
	ordersvc "github.com/Additional-Code/fooddelivery/internal/service/order"
	"github.com/Additional-Code/fooddelivery/internal/worker"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(NewPlacedHandler, fx.ResultTags(`group:"worker.handlers"`)),
		fx.Annotate(NewAssignedHandler, fx.ResultTags(`group:"worker.handlers"`)),
	),
)

// NewPlacedHandler retries matching for orders that were placed while no
// rider had capacity.
func NewPlacedHandler(orders *ordersvc.Service, logger *zap.Logger) worker.HandlerRegistration {
	handler := func(ctx context.Context, ev messaging.Event) error {
		ctx, span := workerTracer.Start(ctx, "worker.orders.placed", trace.WithAttributes(attribute.String("event.id", ev.ID)))
		defer span.End()

		var placed ordersvc.OrderPlacedEvent
		if err := ev.Decode(&placed); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			logger.Error("dropping undecodable order.placed", zap.String("event_id", ev.ID), zap.Error(err))
			return nil
		}
		if placed.RiderStatus != ordersvc.RiderPending {
			return nil
		}

		assigned, err := orders.RetryAssignment(ctx, placed.OrderID)
		if errorbank.Is(err, errorbank.KindNotFound) {
			logger.Warn("order vanished before retry", zap.Int64("order_id", placed.OrderID))
			return nil
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "retry failed")
			return err
		}
		logger.Info("assignment retried", zap.Int64("order_id", placed.OrderID), zap.Bool("assigned", assigned))
		return nil
	}

	return worker.HandlerRegistration{EventType: ordersvc.EventOrderPlaced, Handler: handler}
}

// NewAssignedHandler tells the customer a rider is on the way.
func NewAssignedHandler(notifications *notificationsvc.Service, logger *zap.Logger) worker.HandlerRegistration {
	handler := func(ctx context.Context, ev messaging.Event) error {
		ctx, span := workerTracer.Start(ctx, "worker.orders.assigned", trace.WithAttributes(attribute.String("event.id", ev.ID)))
		defer span.End()

		var assigned ordersvc.OrderAssignedEvent
		if err := ev.Decode(&assigned); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			logger.Error("dropping undecodable order.assigned", zap.String("event_id", ev.ID), zap.Error(err))
			return nil
		}
		// Quick orders have nobody to notify.
		if assigned.UserID == nil {
			return nil
		}

		orderID := assigned.OrderID
		_, err := notifications.Notify(ctx, *assigned.UserID, &orderID, AssignedMessage(assigned))
		if errorbank.Is(err, errorbank.KindNotFound) {
			logger.Warn("notification target missing", zap.Int64("order_id", orderID), zap.Error(err))
			return nil
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "notify failed")
			return err
		}
		return nil
	}

	return worker.HandlerRegistration{EventType: ordersvc.EventOrderAssigned, Handler: handler}
}

// AssignedMessage is the text a customer receives once a rider is assigned.
func AssignedMessage(ev ordersvc.OrderAssignedEvent) string {
	return fmt.Sprintf("A rider is on the way with order #%d. Estimated delivery in %d minutes.",
		ev.OrderID, ev.EstimatedDeliveryTime)
}
