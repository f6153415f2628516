package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/Additional-Code/fooddelivery/internal/app"
)

func TestGraphsResolve(t *testing.T) {
	for name, opts := range map[string]fx.Option{
		"http":   app.HTTP,
		"worker": app.Worker,
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, fx.ValidateApp(opts, fx.NopLogger))
		})
	}
}
