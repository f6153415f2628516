// Package dbtest opens a throwaway sqlite store with the full schema applied.
package dbtest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/database"
	"github.com/Additional-Code/fooddelivery/internal/migration"
)

// Config returns a database config pointing at a file inside t.TempDir().
func Config(t testing.TB) config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "food_delivery_test.db")
	return config.Config{
		Database: config.Database{
			Driver:       "sqlite",
			DSN:          fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Matching: config.Matching{
			MaxActiveOrders:   3,
			FlatTravelMinutes: 15,
		},
	}
}

// Open returns migrated connections that are closed when the test ends.
func Open(t testing.TB) *database.Connections {
	t.Helper()

	cfg := Config(t)
	conns, err := database.Open(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conns.Close() })

	mig, err := migration.New(cfg, conns, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, mig.Up(context.Background()))

	return conns
}
