package notification_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/fooddelivery/internal/dto"
	notificationtransport "github.com/Additional-Code/fooddelivery/internal/transport/http/notification"
	"github.com/Additional-Code/fooddelivery/internal/transport/http/transporttest"
)

func setup(t *testing.T) *transporttest.Env {
	t.Helper()
	env := transporttest.New(t)
	notificationtransport.Register(env.Echo, notificationtransport.NewHandler(env.Notifications))
	return env
}

func TestNotifyAndList(t *testing.T) {
	env := setup(t)
	user, err := env.Users.Register(context.Background(), "Alice", "Location 5")
	require.NoError(t, err)

	for _, msg := range []string{"first", "second"} {
		rec := env.Do(t, http.MethodPost, "/notify_user", dto.NotifyUserRequest{UserID: user.ID, Message: msg})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Positive(t, transporttest.Decode[dto.NotifyUserResponse](t, rec).NotificationID)
	}

	rec := env.Do(t, http.MethodPost, "/list_user_notifications", dto.ListNotificationsRequest{UserID: user.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := transporttest.Decode[dto.NotificationsResponse](t, rec)
	assert.Equal(t, user.ID, body.UserID)
	require.Len(t, body.Notifications, 2)
	assert.Equal(t, "second", body.Notifications[0].Message)
	assert.Equal(t, "first", body.Notifications[1].Message)
	assert.Nil(t, body.Notifications[0].OrderID)
}

func TestNotifyUnknownTargets(t *testing.T) {
	env := setup(t)

	rec := env.Do(t, http.MethodPost, "/notify_user", dto.NotifyUserRequest{UserID: 5, Message: "hello"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.Do(t, http.MethodPost, "/notify_user", dto.NotifyUserRequest{UserID: 0, Message: "hello"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", transporttest.Decode[transporttest.ErrorBody](t, rec).Kind)

	user, err := env.Users.Register(context.Background(), "Alice", "Location 5")
	require.NoError(t, err)
	orderID := int64(404)
	rec = env.Do(t, http.MethodPost, "/notify_user", dto.NotifyUserRequest{UserID: user.ID, OrderID: &orderID, Message: "hello"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.Do(t, http.MethodPost, "/notify_user", map[string]any{"user_id": user.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.Do(t, http.MethodPost, "/list_user_notifications", dto.ListNotificationsRequest{UserID: 5})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
