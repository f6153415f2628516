package rider

import "go.uber.org/fx"

// Module provides the rider service to Fx.
var Module = fx.Provide(NewService)
