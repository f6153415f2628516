package rider

import "go.uber.org/fx"

// Module provides the rider repository to Fx.
var Module = fx.Provide(NewRepository)
