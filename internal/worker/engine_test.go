package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/messaging"
	"github.com/Additional-Code/fooddelivery/internal/worker"
)

type idleClient struct{}

func (idleClient) Publish(context.Context, messaging.Message) error { return nil }
func (idleClient) Consume(ctx context.Context, _ messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}
func (idleClient) Topic() string { return "orders.events" }

func message(t *testing.T, eventType string, payload any) messaging.Message {
	t.Helper()
	ev, err := messaging.NewEvent(eventType, payload)
	require.NoError(t, err)
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	return messaging.Message{Value: raw, Headers: map[string]string{messaging.HeaderEventType: eventType}}
}

func TestDispatchRoutesByEventType(t *testing.T) {
	t.Parallel()

	var seen []string
	engine := worker.NewEngine(worker.Params{
		Client: idleClient{},
		Logger: zap.NewNop(),
		Config: config.Config{},
		Registrations: []worker.HandlerRegistration{
			{EventType: "order.placed", Handler: func(_ context.Context, ev messaging.Event) error {
				seen = append(seen, ev.Type)
				return nil
			}},
			{EventType: "order.assigned", Handler: func(context.Context, messaging.Event) error {
				return errors.New("retry me")
			}},
		},
	})

	ctx := context.Background()
	require.NoError(t, engine.Dispatch(ctx, message(t, "order.placed", map[string]int{"order_id": 1})))
	assert.Error(t, engine.Dispatch(ctx, message(t, "order.assigned", map[string]int{"order_id": 1})))
	assert.NoError(t, engine.Dispatch(ctx, message(t, "order.cancelled", nil)))
	assert.NoError(t, engine.Dispatch(ctx, messaging.Message{Value: []byte("{")}))

	assert.Equal(t, []string{"order.placed"}, seen)
}
