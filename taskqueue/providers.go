package taskqueue

import (
	"context"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewPool),
	fx.Provide(NewPostgresDispatcher),
	fx.Provide(func(d *PostgresDispatcher) shared.TaskDispatcher { return d }),
	fx.Provide(NewWorker),
)

// StartWorker ties the worker's LISTEN loop to the application lifecycle.
func StartWorker(lc fx.Lifecycle, worker *Worker) {
	workerCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return worker.Start(workerCtx)
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}
