package notification

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/fooddelivery/internal/dto"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/request"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/response"
	service "github.com/Additional-Code/fooddelivery/internal/service/notification"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/transport/http/notification")

// Handler exposes notification endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a notification Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.POST("/notify_user", h.notify)
	e.POST("/list_user_notifications", h.list)
}

func (h *Handler) notify(c echo.Context) error {
	b := response.New(c)

	var payload dto.NotifyUserRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "notifications.notify", trace.WithAttributes(attribute.Int64("user.id", payload.UserID)))
	defer span.End()

	n, err := h.svc.Notify(ctx, payload.UserID, payload.OrderID, payload.Message)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.NotifyUserResponse{
		NotificationID: n.ID,
		Message:        "Notification logged successfully",
	}).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	var payload dto.ListNotificationsRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "notifications.list", trace.WithAttributes(attribute.Int64("user.id", payload.UserID)))
	defer span.End()

	list, err := h.svc.ListForUser(ctx, payload.UserID)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NotificationsResponse{
		UserID:        payload.UserID,
		Notifications: dto.ToNotifications(list),
		Message:       "Notifications retrieved successfully",
	}).Build()
}
