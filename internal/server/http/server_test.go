package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/config"
	httpserver "github.com/Additional-Code/fooddelivery/internal/server/http"
)

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	e := httpserver.NewEcho(config.Config{}, nil, zap.NewNop())

	rec := serve(e, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterErrorsUseJSONShape(t *testing.T) {
	e := httpserver.NewEcho(config.Config{}, nil, zap.NewNop())
	e.GET("/boom", func(echo.Context) error { return errors.New("disk on fire") })
	e.GET("/panic", func(echo.Context) error { panic("unexpected") })

	rec := serve(e, http.MethodGet, "/nowhere")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found","kind":"not_found"}`, rec.Body.String())

	rec = serve(e, http.MethodDelete, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = serve(e, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error","kind":"internal"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
