package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/Additional-Code/fooddelivery/internal/cache"
	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/database"
	"github.com/Additional-Code/fooddelivery/internal/logger"
	"github.com/Additional-Code/fooddelivery/internal/matching"
	"github.com/Additional-Code/fooddelivery/internal/messaging"
	"github.com/Additional-Code/fooddelivery/internal/migration"
	"github.com/Additional-Code/fooddelivery/internal/observability"
	repositorynotification "github.com/Additional-Code/fooddelivery/internal/repository/notification"
	repositoryorder "github.com/Additional-Code/fooddelivery/internal/repository/order"
	repositoryrestaurant "github.com/Additional-Code/fooddelivery/internal/repository/restaurant"
	repositoryrider "github.com/Additional-Code/fooddelivery/internal/repository/rider"
	repositoryuser "github.com/Additional-Code/fooddelivery/internal/repository/user"
	grpcserver "github.com/Additional-Code/fooddelivery/internal/server/grpc"
	httpserver "github.com/Additional-Code/fooddelivery/internal/server/http"
	servicenotification "github.com/Additional-Code/fooddelivery/internal/service/notification"
	serviceorder "github.com/Additional-Code/fooddelivery/internal/service/order"
	servicerestaurant "github.com/Additional-Code/fooddelivery/internal/service/restaurant"
	servicerider "github.com/Additional-Code/fooddelivery/internal/service/rider"
	serviceuser "github.com/Additional-Code/fooddelivery/internal/service/user"
	transporthttp "github.com/Additional-Code/fooddelivery/internal/transport/http"
	"github.com/Additional-Code/fooddelivery/internal/worker"
	workerorder "github.com/Additional-Code/fooddelivery/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	migration.Module,
	observability.Module,
	matching.Module,
	repositoryuser.Module,
	repositoryrider.Module,
	repositoryrestaurant.Module,
	repositoryorder.Module,
	repositorynotification.Module,
	serviceuser.Module,
	servicerider.Module,
	servicerestaurant.Module,
	serviceorder.Module,
	servicenotification.Module,
)

// Schema brings the store up to date before anything serves traffic.
var Schema = fx.Invoke(func(lc fx.Lifecycle, mig *migration.Migrator) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return mig.Up(ctx)
		},
	})
})

// HTTP wires the HTTP and gRPC servers on top of the core modules.
var HTTP = fx.Options(
	Core,
	Schema,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	Schema,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
