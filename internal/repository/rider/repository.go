package rider

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/fooddelivery/internal/database"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/repository/rider")

// Repository encapsulates read/write access for riders.
type Repository struct {
	conns  *database.Connections
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		conns:  conns,
		reader: conns.Reader,
	}
}

// Register validates and persists a new rider. New riders start available.
func (r *Repository) Register(ctx context.Context, name, location string) (*entity.Rider, error) {
	rider := &entity.Rider{Name: name, Location: location, IsAvailable: true}
	if err := entity.Validate(rider); err != nil {
		return nil, err
	}

	ctx, span := repoTracer.Start(ctx, "RiderRepository.Register")
	defer span.End()

	err := r.conns.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(rider).Exec(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}
	return rider, nil
}

// GetByID fetches a rider by primary key. A missing row yields nil, nil.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Rider, error) {
	ctx, span := repoTracer.Start(ctx, "RiderRepository.GetByID", trace.WithAttributes(attribute.Int64("rider.id", id)))
	defer span.End()

	rider := new(entity.Rider)
	err := r.reader.NewSelect().Model(rider).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return rider, nil
}

// List returns every rider ordered by id.
func (r *Repository) List(ctx context.Context) ([]entity.Rider, error) {
	ctx, span := repoTracer.Start(ctx, "RiderRepository.List")
	defer span.End()

	riders := make([]entity.Rider, 0)
	if err := r.reader.NewSelect().Model(&riders).Order("id ASC").Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return riders, nil
}

// UpdateLocation moves a rider. It reports whether a row was updated.
func (r *Repository) UpdateLocation(ctx context.Context, id int64, location string) (bool, error) {
	if location == "" {
		return false, errorbank.InvalidInput("location is required", errorbank.WithDetail("location", "required"))
	}

	ctx, span := repoTracer.Start(ctx, "RiderRepository.UpdateLocation", trace.WithAttributes(attribute.Int64("rider.id", id)))
	defer span.End()

	return r.update(ctx, span, id, "location = ?", location)
}

// SetAvailability toggles whether the rider takes new orders.
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool) (bool, error) {
	ctx, span := repoTracer.Start(ctx, "RiderRepository.SetAvailability", trace.WithAttributes(
		attribute.Int64("rider.id", id),
		attribute.Bool("rider.available", available),
	))
	defer span.End()

	return r.update(ctx, span, id, "is_available = ?", available)
}

func (r *Repository) update(ctx context.Context, span trace.Span, id int64, set string, value any) (bool, error) {
	var updated bool
	err := r.conns.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model((*entity.Rider)(nil)).Set(set, value).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		updated, err = database.RowsAffected(res)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return false, err
	}
	return updated, nil
}

// ListAvailable returns riders flagged available, regardless of their load.
func (r *Repository) ListAvailable(ctx context.Context) ([]entity.Rider, error) {
	ctx, span := repoTracer.Start(ctx, "RiderRepository.ListAvailable")
	defer span.End()

	riders := make([]entity.Rider, 0)
	err := r.reader.NewSelect().Model(&riders).Where("is_available = ?", true).Order("id ASC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return riders, nil
}

// ListAvailableWithCapacity returns available riders holding fewer than
// maxActive in_progress orders. The result is a snapshot; nothing is reserved.
func (r *Repository) ListAvailableWithCapacity(ctx context.Context, maxActive int) ([]entity.RiderLoad, error) {
	ctx, span := repoTracer.Start(ctx, "RiderRepository.ListAvailableWithCapacity", trace.WithAttributes(attribute.Int("rider.max_active", maxActive)))
	defer span.End()

	riders := make([]entity.RiderLoad, 0)
	err := r.reader.NewSelect().
		TableExpr("riders AS rd").
		ColumnExpr("rd.id, rd.name, rd.location, rd.is_available").
		ColumnExpr("COUNT(o.id) AS active_orders").
		Join("LEFT JOIN orders AS o ON o.rider_id = rd.id AND o.status = ?", entity.OrderInProgress).
		Where("rd.is_available = ?", true).
		GroupExpr("rd.id").
		Having("COUNT(o.id) < ?", maxActive).
		OrderExpr("rd.id ASC").
		Scan(ctx, &riders)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return riders, nil
}

// ActiveOrderCount returns how many in_progress orders the rider holds.
func (r *Repository) ActiveOrderCount(ctx context.Context, riderID int64) (int, error) {
	ctx, span := repoTracer.Start(ctx, "RiderRepository.ActiveOrderCount", trace.WithAttributes(attribute.Int64("rider.id", riderID)))
	defer span.End()

	count, err := r.reader.NewSelect().
		Model((*entity.Order)(nil)).
		Where("rider_id = ?", riderID).
		Where("status = ?", entity.OrderInProgress).
		Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count failed")
		return 0, err
	}
	return count, nil
}
