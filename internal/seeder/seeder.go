package seeder

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/database"
	"github.com/Additional-Code/fooddelivery/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	conns  *database.Connections
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{conns: conns, logger: logger}
}

// Result counts the rows written by a seeding run.
type Result struct {
	Restaurants int
	MenuItems   int
	Riders      int
	Users       int
	Orders      int
}

// SampleData loads the demo restaurants, menus, riders, users and pending
// orders in one transaction. A store that already has restaurants is left
// untouched and the zero Result is returned.
func (s *Seeder) SampleData(ctx context.Context) (Result, error) {
	var res Result

	err := s.conns.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		existing, err := tx.NewSelect().Model((*entity.Restaurant)(nil)).Count(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		restaurants := sampleRestaurants()
		if _, err := tx.NewInsert().Model(&restaurants).Exec(ctx); err != nil {
			return fmt.Errorf("seed restaurants: %w", err)
		}

		var items []entity.MenuItem
		for i, r := range restaurants {
			for _, item := range sampleMenus[i] {
				items = append(items, entity.MenuItem{RestaurantID: r.ID, ItemName: item.name, Price: item.price})
			}
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return fmt.Errorf("seed menus: %w", err)
		}

		riders := sampleRiders()
		if _, err := tx.NewInsert().Model(&riders).Exec(ctx); err != nil {
			return fmt.Errorf("seed riders: %w", err)
		}

		users := sampleUsers()
		if _, err := tx.NewInsert().Model(&users).Exec(ctx); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		orders := sampleOrders(users, restaurants)
		if _, err := tx.NewInsert().Model(&orders).Exec(ctx); err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}

		res = Result{
			Restaurants: len(restaurants),
			MenuItems:   len(items),
			Riders:      len(riders),
			Users:       len(users),
			Orders:      len(orders),
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if s.logger != nil {
		s.logger.Info("seeded sample data",
			zap.Int("restaurants", res.Restaurants),
			zap.Int("menu_items", res.MenuItems),
			zap.Int("riders", res.Riders),
			zap.Int("users", res.Users),
			zap.Int("orders", res.Orders),
		)
	}
	return res, nil
}
