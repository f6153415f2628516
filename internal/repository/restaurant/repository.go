package restaurant

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
)

var repoTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/repository/restaurant")

// Repository encapsulates read/write access for restaurants and their menus.
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

// Register persists a restaurant together with its initial menu in one
// transaction. Empty opening or closing times take the defaults. Any invalid
// menu item rolls back the whole registration.
func (r *Repository) Register(ctx context.Context, restaurant *entity.Restaurant, items []entity.MenuItem) ([]entity.MenuItem, error) {
	if restaurant.OpeningTime == "" {
		restaurant.OpeningTime = entity.DefaultOpeningTime
	}
	if restaurant.ClosingTime == "" {
		restaurant.ClosingTime = entity.DefaultClosingTime
	}
	if err := entity.Validate(restaurant); err != nil {
		return nil, err
	}

	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.Register", trace.WithAttributes(attribute.Int("menu.items", len(items))))
	defer span.End()

	menu := make([]entity.MenuItem, len(items))
	copy(menu, items)

	err := r.conns.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(restaurant).Exec(ctx); err != nil {
			return err
		}
		if len(menu) == 0 {
			return nil
		}
		for i := range menu {
			menu[i].ID = 0
			menu[i].RestaurantID = restaurant.ID
			if err := entity.Validate(&menu[i]); err != nil {
				return err
			}
		}
		_, err := tx.NewInsert().Model(&menu).Exec(ctx)
		return err
	})
	if err != nil {
		restaurant.ID = 0
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("restaurant.id", restaurant.ID))
	return menu, nil
}

// GetByID fetches a restaurant by primary key. A missing row yields nil, nil.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Restaurant, error) {
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.GetByID", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	restaurant := new(entity.Restaurant)
	err := r.reader.NewSelect().Model(restaurant).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return restaurant, nil
}

// List returns every restaurant ordered by id. An empty foodType matches all.
func (r *Repository) List(ctx context.Context, foodType string) ([]entity.Restaurant, error) {
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.List", trace.WithAttributes(attribute.String("restaurant.food_type", foodType)))
	defer span.End()

	restaurants := make([]entity.Restaurant, 0)
	q := r.reader.NewSelect().Model(&restaurants).Order("id ASC")
	if foodType != "" {
		q = q.Where("food_type = ?", foodType)
	}
	if err := q.Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return restaurants, nil
}

// FoodTypes returns the distinct cuisines on offer, alphabetically.
func (r *Repository) FoodTypes(ctx context.Context) ([]string, error) {
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.FoodTypes")
	defer span.End()

	types := make([]string, 0)
	err := r.reader.NewSelect().
		Model((*entity.Restaurant)(nil)).
		ColumnExpr("DISTINCT food_type").
		OrderExpr("food_type ASC").
		Scan(ctx, &types)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return types, nil
}

// AddMenuItem appends an item to an existing restaurant's menu. It reports
// false when the restaurant does not exist.
func (r *Repository) AddMenuItem(ctx context.Context, item *entity.MenuItem) (bool, error) {
	if err := entity.Validate(item); err != nil {
		return false, err
	}

	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.AddMenuItem", trace.WithAttributes(attribute.Int64("restaurant.id", item.RestaurantID)))
	defer span.End()

	var added bool
	err := r.conns.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*entity.Restaurant)(nil)).Where("id = ?", item.RestaurantID).Exists(ctx)
		if err != nil || !exists {
			return err
		}
		if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return false, err
	}
	return added, nil
}

// Menu returns a restaurant's items ordered by id.
func (r *Repository) Menu(ctx context.Context, restaurantID int64) ([]entity.MenuItem, error) {
	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.Menu", trace.WithAttributes(attribute.Int64("restaurant.id", restaurantID)))
	defer span.End()

	items := make([]entity.MenuItem, 0)
	err := r.reader.NewSelect().Model(&items).Where("restaurant_id = ?", restaurantID).Order("id ASC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return items, nil
}

// MenuItems returns the subset of ids that belong to the restaurant. Ids on
// another restaurant's menu, or unknown ids, are silently left out.
func (r *Repository) MenuItems(ctx context.Context, restaurantID int64, ids []int64) ([]entity.MenuItem, error) {
	items := make([]entity.MenuItem, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	ctx, span := repoTracer.Start(ctx, "RestaurantRepository.MenuItems", trace.WithAttributes(attribute.Int64("restaurant.id", restaurantID)))
	defer span.End()

	err := r.reader.NewSelect().
		Model(&items).
		Where("restaurant_id = ?", restaurantID).
		Where("id IN (?)", bun.In(ids)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return items, nil
}
