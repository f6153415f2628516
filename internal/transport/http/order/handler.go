package order

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/fooddelivery/internal/dto"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/request"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/response"
	service "github.com/Additional-Code/fooddelivery/internal/service/order"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.POST("/place_order", h.place)

	g := e.Group("/api/orders")
	g.POST("", h.quick)
	g.POST("/assign_rider", h.assignRider)
	g.GET("/:id", h.getByID)
	g.PUT("/:id/status", h.updateStatus)
	g.PUT("/:id/complete", h.complete)
}

func (h *Handler) place(c echo.Context) error {
	b := response.New(c)

	var payload dto.PlaceOrderRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.place", trace.WithAttributes(
		attribute.Int64("user.id", payload.UserID),
		attribute.Int64("restaurant.id", payload.RestaurantID),
	))
	defer span.End()

	placement, err := h.svc.PlaceOrder(ctx, service.PlaceOrderInput{
		UserID:       payload.UserID,
		RestaurantID: payload.RestaurantID,
		ItemIDs:      payload.ItemIDs,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.ToPlacementResponse(placement)).Build()
}

func (h *Handler) quick(c echo.Context) error {
	b := response.New(c)

	var payload dto.QuickOrderRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.quick", trace.WithAttributes(attribute.Int64("restaurant.id", payload.RestaurantID)))
	defer span.End()

	order, err := h.svc.QuickOrder(ctx, payload.Input())
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.ToQuickOrderResponse(order)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	detail, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.ToOrderDetailResponse(*detail)).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}
	var payload dto.UpdateOrderStatusRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.updateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", payload.Status),
	))
	defer span.End()

	if err := h.svc.UpdateStatus(ctx, id, entity.OrderStatus(payload.Status)); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("Status updated").Build()
}

func (h *Handler) complete(c echo.Context) error {
	b := response.New(c)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.complete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := h.svc.MarkCompleted(ctx, id); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("Order marked as completed").Build()
}

func (h *Handler) assignRider(c echo.Context) error {
	b := response.New(c)

	var payload dto.AssignRiderRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.assignRider", trace.WithAttributes(
		attribute.Int64("order.id", payload.OrderID),
		attribute.Int64("rider.id", payload.RiderID),
	))
	defer span.End()

	if err := h.svc.AssignRider(ctx, payload.OrderID, payload.RiderID, payload.EstimatedTime); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.AssignRiderResponse{
		Message:       "Rider assigned successfully",
		OrderID:       payload.OrderID,
		RiderID:       payload.RiderID,
		EstimatedTime: payload.EstimatedTime,
	}).Build()
}
