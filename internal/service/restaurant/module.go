package restaurant

import "go.uber.org/fx"

// Module provides the restaurant service to Fx.
var Module = fx.Provide(NewService)
