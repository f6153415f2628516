package errorbank_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

func TestStatusCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    *errorbank.AppError
		status int
		code   codes.Code
	}{
		{errorbank.InvalidInput("bad"), http.StatusBadRequest, codes.InvalidArgument},
		{errorbank.NotFound("missing"), http.StatusNotFound, codes.NotFound},
		{errorbank.Conflict("busy"), http.StatusConflict, codes.AlreadyExists},
		{errorbank.StorageFailure(errors.New("disk I/O error")), http.StatusInternalServerError, codes.Unavailable},
		{errorbank.Internal("boom"), http.StatusInternalServerError, codes.Internal},
	}

	for _, tc := range cases {
		t.Run(string(tc.err.Kind()), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.status, tc.err.StatusCode())
			assert.Equal(t, tc.code, tc.err.GRPCCode())
		})
	}
}

func TestStorageFailurePassesMessageThrough(t *testing.T) {
	t.Parallel()

	cause := errors.New("database is locked")
	err := errorbank.StorageFailure(cause)

	assert.Equal(t, "database is locked", err.Message())
	assert.ErrorIs(t, err, cause)
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errorbank.From(nil))

	wrapped := fmt.Errorf("place order: %w", errorbank.NotFound("user not found"))
	appErr := errorbank.From(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, errorbank.KindNotFound, appErr.Kind())

	plain := errorbank.From(errors.New("boom"))
	assert.Equal(t, errorbank.KindInternal, plain.Kind())
	assert.Equal(t, "internal error: boom", plain.Error())
}

func TestIs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrap: %w", errorbank.InvalidInput("name is required", errorbank.WithDetail("name", "required")))
	assert.True(t, errorbank.Is(err, errorbank.KindInvalidInput))
	assert.False(t, errorbank.Is(err, errorbank.KindNotFound))
	assert.False(t, errorbank.Is(errors.New("plain"), errorbank.KindInvalidInput))
	assert.Equal(t, map[string]any{"name": "required"}, errorbank.From(err).Details())
}

func TestFromStorage(t *testing.T) {
	t.Parallel()

	assert.NoError(t, errorbank.FromStorage(nil))

	notFound := errorbank.NotFound("order not found")
	assert.Same(t, notFound, errorbank.FromStorage(notFound))

	err := errorbank.FromStorage(errors.New("disk I/O error"))
	assert.True(t, errorbank.Is(err, errorbank.KindStorageFailure))
	assert.Equal(t, "disk I/O error", errorbank.From(err).Message())
}
