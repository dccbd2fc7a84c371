package scope

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the execution-scope components and hooks factory teardown
// on application stop.
var Module = fx.Options(
	fx.Provide(
		NewContextRegistry,
		NewSynchronizationManager,
		NewExecutionContextFactory,
	),
	fx.Invoke(func(lc fx.Lifecycle, factory *ExecutionContextFactory) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return factory.Close()
			},
		})
	}),
)
