package http

import (
	"go.uber.org/fx"

	notificationtransport "github.com/Additional-Code/fooddelivery/internal/transport/http/notification"
	ordertransport "github.com/Additional-Code/fooddelivery/internal/transport/http/order"
	pagetransport "github.com/Additional-Code/fooddelivery/internal/transport/http/page"
	restauranttransport "github.com/Additional-Code/fooddelivery/internal/transport/http/restaurant"
	ridertransport "github.com/Additional-Code/fooddelivery/internal/transport/http/rider"
	usertransport "github.com/Additional-Code/fooddelivery/internal/transport/http/user"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	usertransport.Module,
	ridertransport.Module,
	restauranttransport.Module,
	ordertransport.Module,
	notificationtransport.Module,
	pagetransport.Module,
)
