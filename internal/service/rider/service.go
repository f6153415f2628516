package rider

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	repo "github.com/Additional-Code/fooddelivery/internal/repository/rider"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/service/rider")

// Service manages riders and their availability.
type Service struct {
	repo            *repo.Repository
	maxActiveOrders int
	logger          *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:            p.Repository,
		maxActiveOrders: p.Config.Matching.MaxActiveOrders,
		logger:          p.Logger,
	}
}

// Register creates a rider; new riders are available.
func (s *Service) Register(ctx context.Context, name, location string) (*entity.Rider, error) {
	ctx, span := serviceTracer.Start(ctx, "RiderService.Register")
	defer span.End()

	rider, err := s.repo.Register(ctx, name, location)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	s.logger.Info("rider registered", zap.Int64("rider_id", rider.ID))
	return rider, nil
}

// Get loads a rider or fails with not_found.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Rider, error) {
	rider, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	if rider == nil {
		return nil, errorbank.NotFound("rider not found")
	}
	return rider, nil
}

// List returns every rider.
func (s *Service) List(ctx context.Context) ([]entity.Rider, error) {
	riders, err := s.repo.List(ctx)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return riders, nil
}

// UpdateLocation moves a rider.
func (s *Service) UpdateLocation(ctx context.Context, id int64, location string) error {
	ctx, span := serviceTracer.Start(ctx, "RiderService.UpdateLocation", trace.WithAttributes(attribute.Int64("rider.id", id)))
	defer span.End()

	updated, err := s.repo.UpdateLocation(ctx, id, location)
	if err != nil {
		return errorbank.FromStorage(err)
	}
	if !updated {
		return errorbank.NotFound("rider not found")
	}
	return nil
}

// SetAvailability toggles whether the rider is offered new orders.
func (s *Service) SetAvailability(ctx context.Context, id int64, available bool) error {
	ctx, span := serviceTracer.Start(ctx, "RiderService.SetAvailability", trace.WithAttributes(attribute.Int64("rider.id", id)))
	defer span.End()

	updated, err := s.repo.SetAvailability(ctx, id, available)
	if err != nil {
		return errorbank.FromStorage(err)
	}
	if !updated {
		return errorbank.NotFound("rider not found")
	}
	s.logger.Info("rider availability changed", zap.Int64("rider_id", id), zap.Bool("available", available))
	return nil
}

// Available lists riders flagged available, ignoring their load.
func (s *Service) Available(ctx context.Context) ([]entity.Rider, error) {
	riders, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return riders, nil
}

// AvailableWithCapacity lists available riders that can still take orders.
func (s *Service) AvailableWithCapacity(ctx context.Context) ([]entity.RiderLoad, error) {
	riders, err := s.repo.ListAvailableWithCapacity(ctx, s.maxActiveOrders)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return riders, nil
}
