package logger

import "go.uber.org/fx"

// Module routes Fx's own lifecycle log output through the framework logger.
var Module = fx.Options(
	fx.WithLogger(NewFxLoggerAdapter),
)
