package notification

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/observability"
	repo "github.com/Additional-Code/fooddelivery/internal/repository/notification"
	userrepo "github.com/Additional-Code/fooddelivery/internal/repository/user"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/service/notification")

// Service writes and lists user notifications.
type Service struct {
	repo    *repo.Repository
	users   *userrepo.Repository
	metrics *observability.OrderMetrics
	logger  *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Users      *userrepo.Repository
	Metrics    *observability.OrderMetrics `optional:"true"`
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:    p.Repository,
		users:   p.Users,
		metrics: p.Metrics,
		logger:  p.Logger,
	}
}

// Notify stores a message for a user, optionally about one of their orders.
func (s *Service) Notify(ctx context.Context, userID int64, orderID *int64, message string) (*entity.Notification, error) {
	ctx, span := serviceTracer.Start(ctx, "NotificationService.Notify", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	n := &entity.Notification{UserID: userID, OrderID: orderID, Message: message}
	err := s.repo.Create(ctx, n)
	switch {
	case errors.Is(err, repo.ErrUserNotFound):
		return nil, errorbank.NotFound("user not found")
	case errors.Is(err, repo.ErrOrderNotFound):
		return nil, errorbank.NotFound("order not found")
	case err != nil:
		return nil, errorbank.FromStorage(err)
	}

	s.metrics.NotificationSent(ctx)
	s.logger.Info("notification stored", zap.Int64("user_id", userID), zap.Int64("notification_id", n.ID))
	return n, nil
}

// ListForUser returns a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]entity.Notification, error) {
	ctx, span := serviceTracer.Start(ctx, "NotificationService.ListForUser", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	if user == nil {
		return nil, errorbank.NotFound("user not found")
	}

	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return notifications, nil
}
