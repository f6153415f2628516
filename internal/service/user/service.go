package user

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/entity"
	repo "github.com/Additional-Code/fooddelivery/internal/repository/user"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/service/user")

// Service manages customer accounts.
type Service struct {
	repo   *repo.Repository
	logger *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{repo: p.Repository, logger: p.Logger}
}

// Register creates a user.
func (s *Service) Register(ctx context.Context, name, location string) (*entity.User, error) {
	ctx, span := serviceTracer.Start(ctx, "UserService.Register")
	defer span.End()

	user, err := s.repo.Register(ctx, name, location)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Get loads a user or fails with not_found.
func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	ctx, span := serviceTracer.Start(ctx, "UserService.Get", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	if user == nil {
		return nil, errorbank.NotFound("user not found")
	}
	return user, nil
}

// List returns every user.
func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return users, nil
}
