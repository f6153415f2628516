// Package transporttest wires real services over a temporary store for
// handler tests.
package transporttest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/cache"
	"github.com/Additional-Code/fooddelivery/internal/database/dbtest"
	"github.com/Additional-Code/fooddelivery/internal/matching"
	"github.com/Additional-Code/fooddelivery/internal/messaging"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/request"
	notificationrepo "github.com/Additional-Code/fooddelivery/internal/repository/notification"
	orderrepo "github.com/Additional-Code/fooddelivery/internal/repository/order"
	restaurantrepo "github.com/Additional-Code/fooddelivery/internal/repository/restaurant"
	riderrepo "github.com/Additional-Code/fooddelivery/internal/repository/rider"
	userrepo "github.com/Additional-Code/fooddelivery/internal/repository/user"
	notificationsvc "github.com/Additional-Code/fooddelivery/internal/service/notification"
	ordersvc "github.com/Additional-Code/fooddelivery/internal/service/order"
	restaurantsvc "github.com/Additional-Code/fooddelivery/internal/service/restaurant"
	ridersvc "github.com/Additional-Code/fooddelivery/internal/service/rider"
	usersvc "github.com/Additional-Code/fooddelivery/internal/service/user"
)

// Env is an echo instance plus the services handlers are built from.
type Env struct {
	Echo          *echo.Echo
	Users         *usersvc.Service
	Riders        *ridersvc.Service
	Restaurants   *restaurantsvc.Service
	Orders        *ordersvc.Service
	Notifications *notificationsvc.Service
}

type nopClient struct{}

func (nopClient) Publish(context.Context, messaging.Message) error { return nil }
func (nopClient) Consume(ctx context.Context, _ messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}
func (nopClient) Topic() string { return "orders.events" }

// New builds the service graph with Fx on a migrated temporary database.
func New(t *testing.T) *Env {
	t.Helper()

	cfg := dbtest.Config(t)
	conns := dbtest.Open(t)

	e := echo.New()
	e.Validator = request.NewValidator()
	env := &Env{Echo: e}

	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(cfg, conns, zap.NewNop()),
		fx.Provide(
			func() cache.Store { return cache.NewMemoryStore(time.Minute) },
			func() messaging.Client { return nopClient{} },
		),
		matching.Module,
		userrepo.Module,
		riderrepo.Module,
		restaurantrepo.Module,
		orderrepo.Module,
		notificationrepo.Module,
		usersvc.Module,
		ridersvc.Module,
		restaurantsvc.Module,
		ordersvc.Module,
		notificationsvc.Module,
		fx.Populate(&env.Users, &env.Riders, &env.Restaurants, &env.Orders, &env.Notifications),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	return env
}

// Do sends a request through the echo router. A non-nil body is encoded as JSON.
func (e *Env) Do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.Echo.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals a recorded JSON body.
func Decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error   string         `json:"error"`
	Kind    string         `json:"kind"`
	Details map[string]any `json:"details"`
}
