package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/fooddelivery/internal/database"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/repository/order")

// Repository encapsulates read/write access for orders.
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

// Create validates and persists a new order. A zero OrderTime is stamped
// with the current UTC time.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	if order.Status == "" {
		order.Status = entity.OrderPending
	}
	if err := entity.Validate(order); err != nil {
		return err
	}
	if order.OrderTime.IsZero() {
		order.OrderTime = time.Now().UTC()
	}

	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.Int64("restaurant.id", order.RestaurantID)))
	defer span.End()

	err := r.conns.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(order).Exec(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return err
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))
	return nil
}

// GetByID fetches an order by primary key. A missing row yields nil, nil.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order := new(entity.Order)
	err := r.reader.NewSelect().Model(order).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// GetDetail fetches an order joined with its restaurant and rider names.
// A missing row yields nil, nil.
func (r *Repository) GetDetail(ctx context.Context, id int64) (*entity.OrderDetail, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetDetail", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	detail := new(entity.OrderDetail)
	err := r.detailQuery().Where("o.id = ?", id).Limit(1).Scan(ctx, detail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return detail, nil
}

// ListDetailedByUser returns a user's orders, most recent first.
func (r *Repository) ListDetailedByUser(ctx context.Context, userID int64) ([]entity.OrderDetail, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.ListDetailedByUser", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	return r.listDetails(ctx, span, "o.user_id = ?", userID)
}

// ListDetailedByRider returns the orders assigned to a rider, most recent first.
func (r *Repository) ListDetailedByRider(ctx context.Context, riderID int64) ([]entity.OrderDetail, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.ListDetailedByRider", trace.WithAttributes(attribute.Int64("rider.id", riderID)))
	defer span.End()

	return r.listDetails(ctx, span, "o.rider_id = ?", riderID)
}

func (r *Repository) listDetails(ctx context.Context, span trace.Span, where string, arg any) ([]entity.OrderDetail, error) {
	details := make([]entity.OrderDetail, 0)
	err := r.detailQuery().
		Where(where, arg).
		OrderExpr("o.order_time DESC, o.id DESC").
		Scan(ctx, &details)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return details, nil
}

func (r *Repository) detailQuery() *bun.SelectQuery {
	return r.reader.NewSelect().
		TableExpr("orders AS o").
		ColumnExpr("o.id, o.user_id, o.restaurant_id, o.rider_id, o.items, o.total_price").
		ColumnExpr("o.status, o.order_time, o.estimated_delivery_time, o.delivery_location").
		ColumnExpr("r.name AS restaurant_name").
		ColumnExpr("rd.name AS rider_name, rd.location AS rider_location").
		Join("JOIN restaurants AS r ON r.id = o.restaurant_id").
		Join("LEFT JOIN riders AS rd ON rd.id = o.rider_id")
}

// ListByStatus returns up to limit orders in the given status, oldest first.
func (r *Repository) ListByStatus(ctx context.Context, status entity.OrderStatus, limit int) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.ListByStatus", trace.WithAttributes(attribute.String("order.status", string(status))))
	defer span.End()

	orders := make([]entity.Order, 0)
	q := r.reader.NewSelect().Model(&orders).Where("status = ?", status).Order("order_time ASC", "id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets the order's status. It reports whether a row was updated.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, errorbank.InvalidInput("invalid status: "+string(status), errorbank.WithDetail("status", string(status)))
	}

	ctx, span := repoTracer.Start(ctx, "OrderRepository.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	return r.exec(ctx, span, func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		return tx.NewUpdate().Model((*entity.Order)(nil)).
			Set("status = ?", status).
			Where("id = ?", id).
			Exec(ctx)
	})
}

// MarkCompleted moves the order to completed.
func (r *Repository) MarkCompleted(ctx context.Context, id int64) (bool, error) {
	return r.UpdateStatus(ctx, id, entity.OrderCompleted)
}

// AssignRider unconditionally puts the rider on the order and marks it
// assigned. A nil estimate leaves the stored estimate untouched.
func (r *Repository) AssignRider(ctx context.Context, orderID, riderID int64, estimate *int) (bool, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.AssignRider", trace.WithAttributes(
		attribute.Int64("order.id", orderID),
		attribute.Int64("rider.id", riderID),
	))
	defer span.End()

	return r.exec(ctx, span, func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		q := tx.NewUpdate().Model((*entity.Order)(nil)).
			Set("rider_id = ?", riderID).
			Set("status = ?", entity.OrderAssigned).
			Where("id = ?", orderID)
		if estimate != nil {
			q = q.Set("estimated_delivery_time = ?", *estimate)
		}
		return q.Exec(ctx)
	})
}

// AssignIfCapacity assigns the rider only while the rider is still available
// and holds fewer than maxActive in_progress orders, and only while the order
// is still awaiting a rider. The check and the write are one statement, so two
// concurrent placements cannot both take a rider's last slot.
func (r *Repository) AssignIfCapacity(ctx context.Context, orderID, riderID int64, estimate, maxActive int) (bool, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.AssignIfCapacity", trace.WithAttributes(
		attribute.Int64("order.id", orderID),
		attribute.Int64("rider.id", riderID),
		attribute.Int("rider.max_active", maxActive),
	))
	defer span.End()

	return r.exec(ctx, span, func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		return tx.NewUpdate().Model((*entity.Order)(nil)).
			Set("rider_id = ?", riderID).
			Set("status = ?", entity.OrderAssigned).
			Set("estimated_delivery_time = ?", estimate).
			Where("id = ?", orderID).
			Where("status IN (?)", bun.In([]entity.OrderStatus{entity.OrderPending, entity.OrderPlaced})).
			Where("EXISTS (SELECT 1 FROM riders WHERE riders.id = ? AND riders.is_available = ?)", riderID, true).
			Where("(SELECT COUNT(*) FROM orders AS active WHERE active.rider_id = ? AND active.status = ?) < ?",
				riderID, entity.OrderInProgress, maxActive).
			Exec(ctx)
	})
}

func (r *Repository) exec(ctx context.Context, span trace.Span, fn func(ctx context.Context, tx bun.Tx) (sql.Result, error)) (bool, error) {
	var updated bool
	err := r.conns.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := fn(ctx, tx)
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
