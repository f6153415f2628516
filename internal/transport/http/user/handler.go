package user

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/fooddelivery/internal/dto"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/request"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/response"
	ordersvc "github.com/Additional-Code/fooddelivery/internal/service/order"
	service "github.com/Additional-Code/fooddelivery/internal/service/user"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/transport/http/user")

// Handler exposes user endpoints over HTTP.
type Handler struct {
	svc    *service.Service
	orders *ordersvc.Service
}

// NewHandler constructs a user Handler.
func NewHandler(svc *service.Service, orders *ordersvc.Service) *Handler {
	return &Handler{svc: svc, orders: orders}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.POST("/register_user", h.register)
	e.GET("/user/:id/orders", h.history)
	e.GET("/api/user/:id/orders", h.orderDetails)
}

func (h *Handler) register(c echo.Context) error {
	b := response.New(c)

	var payload dto.RegisterUserRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.register")
	defer span.End()

	user, err := h.svc.Register(ctx, payload.Name, payload.Location)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.RegisterUserResponse{
		UserID:  user.ID,
		Message: "User registered successfully",
	}).Build()
}

func (h *Handler) history(c echo.Context) error {
	b := response.New(c)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.history", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	orders, err := h.orders.UserHistory(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.UserOrdersResponse{UserID: id, Orders: dto.FormatOrders(orders)}).Build()
}

// orderDetails lists joined rows without checking the user exists.
func (h *Handler) orderDetails(c echo.Context) error {
	b := response.New(c)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.orderDetails", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	orders, err := h.orders.UserOrders(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.ToOrderDetailResponses(orders)).Build()
}
