package rider

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/fooddelivery/internal/dto"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/request"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/response"
	ordersvc "github.com/Additional-Code/fooddelivery/internal/service/order"
	service "github.com/Additional-Code/fooddelivery/internal/service/rider"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/transport/http/rider")

// Handler exposes rider endpoints over HTTP.
type Handler struct {
	svc    *service.Service
	orders *ordersvc.Service
}

// NewHandler constructs a rider Handler.
func NewHandler(svc *service.Service, orders *ordersvc.Service) *Handler {
	return &Handler{svc: svc, orders: orders}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.POST("/register_rider", h.register)
	e.PUT("/update_rider_location", h.updateLocation)
	e.PUT("/update_rider_availability", h.updateAvailability)
	e.GET("/rider/:id/orders", h.history)
	e.GET("/api/riders/available", h.available)
}

func (h *Handler) register(c echo.Context) error {
	b := response.New(c)

	var payload dto.RegisterRiderRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "riders.register")
	defer span.End()

	rider, err := h.svc.Register(ctx, payload.Name, payload.Location)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.RegisterRiderResponse{
		RiderID: rider.ID,
		Message: "Rider registered successfully",
	}).Build()
}

func (h *Handler) updateLocation(c echo.Context) error {
	b := response.New(c)

	var payload dto.UpdateRiderLocationRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "riders.updateLocation", trace.WithAttributes(attribute.Int64("rider.id", payload.RiderID)))
	defer span.End()

	if err := h.svc.UpdateLocation(ctx, payload.RiderID, payload.Location); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("Rider location updated successfully").Build()
}

func (h *Handler) updateAvailability(c echo.Context) error {
	b := response.New(c)

	var payload dto.UpdateRiderAvailabilityRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "riders.updateAvailability", trace.WithAttributes(
		attribute.Int64("rider.id", payload.RiderID),
		attribute.Bool("rider.available", *payload.IsAvailable),
	))
	defer span.End()

	if err := h.svc.SetAvailability(ctx, payload.RiderID, *payload.IsAvailable); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithMessage("Rider availability updated successfully").Build()
}

func (h *Handler) history(c echo.Context) error {
	b := response.New(c)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "riders.history", trace.WithAttributes(attribute.Int64("rider.id", id)))
	defer span.End()

	orders, err := h.orders.RiderOrders(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.RiderOrdersResponse{RiderID: id, Orders: dto.FormatOrders(orders)}).Build()
}

// available lists riders with spare capacity; ?capacity=false drops the
// capacity filter and returns every rider marked available.
func (h *Handler) available(c echo.Context) error {
	b := response.New(c)

	withCapacity := true
	if raw := c.QueryParam("capacity"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return b.WithError(errorbank.InvalidInput("capacity must be a boolean", errorbank.WithDetail("capacity", raw))).Build()
		}
		withCapacity = parsed
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "riders.available", trace.WithAttributes(attribute.Bool("capacity", withCapacity)))
	defer span.End()

	if !withCapacity {
		riders, err := h.svc.Available(ctx)
		if err != nil {
			return b.WithError(err).Build()
		}
		out := make([]dto.RiderResponse, 0, len(riders))
		for _, r := range riders {
			out = append(out, dto.ToRiderResponse(r))
		}
		return b.WithData(out).Build()
	}

	loads, err := h.svc.AvailableWithCapacity(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}
	out := make([]dto.RiderResponse, 0, len(loads))
	for _, r := range loads {
		out = append(out, dto.ToRiderLoadResponse(r))
	}
	return b.WithData(out).Build()
}
