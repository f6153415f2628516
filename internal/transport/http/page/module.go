package page

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/Additional-Code/fooddelivery/internal/presentation/http/page"
)

// Module wires the HTML renderer and page handlers.
var Module = fx.Options(
	fx.Provide(page.NewRenderer, NewHandler),
	fx.Invoke(func(e *echo.Echo, r *page.Renderer, h *Handler) {
		e.Renderer = r
		Register(e, h)
	}),
)
