package notification

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/fooddelivery/internal/database"
	"github.com/Additional-Code/fooddelivery/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/repository/notification")

var (
	// ErrUserNotFound is returned when the recipient does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrOrderNotFound is returned when the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")
)

// Repository encapsulates read/write access for notifications.
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

// Create logs a notification after checking the user and, when given, the
// order exist.
func (r *Repository) Create(ctx context.Context, n *entity.Notification) error {
	if err := entity.Validate(n); err != nil {
		return err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	ctx, span := repoTracer.Start(ctx, "NotificationRepository.Create", trace.WithAttributes(attribute.Int64("user.id", n.UserID)))
	defer span.End()

	err := r.conns.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*entity.User)(nil)).Where("id = ?", n.UserID).Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}
		if n.OrderID != nil {
			exists, err = tx.NewSelect().Model((*entity.Order)(nil)).Where("id = ?", *n.OrderID).Exists(ctx)
			if err != nil {
				return err
			}
			if !exists {
				return ErrOrderNotFound
			}
		}
		_, err = tx.NewInsert().Model(n).Exec(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// ListByUser returns a user's notifications, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]entity.Notification, error) {
	ctx, span := repoTracer.Start(ctx, "NotificationRepository.ListByUser", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	notifications := make([]entity.Notification, 0)
	err := r.reader.NewSelect().
		Model(&notifications).
		Where("user_id = ?", userID).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return notifications, nil
}
