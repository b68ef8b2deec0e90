package taskqueue

import (
	"context"
	"log/slog"

	"github.com/dmdhrumilmistry/chitragupta/monitoring"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PostgresDispatcher hands tasks to the worker pool over NOTIFY. Delivery
// guarantees live in the queue runtime, not here - handlers are written to
// tolerate redelivery either way.
type PostgresDispatcher struct {
	pool *pgxpool.Pool
}

func NewPostgresDispatcher(pool *pgxpool.Pool) *PostgresDispatcher {
	return &PostgresDispatcher{pool: pool}
}

var _ shared.TaskDispatcher = (*PostgresDispatcher)(nil)

func (d *PostgresDispatcher) Dispatch(ctx context.Context, task shared.Task) (shared.TaskHandle, error) {
	env, data, err := encodeTask(task)
	if err != nil {
		return shared.TaskHandle{}, err
	}

	if _, err := d.pool.Exec(ctx, "SELECT pg_notify($1, $2)", tasksChannel, string(data)); err != nil {
		return shared.TaskHandle{}, errors.Wrapf(err, "could not dispatch task %s", task.TaskName())
	}

	monitoring.TasksDispatched.WithLabelValues(string(task.TaskName())).Inc()
	slog.Debug("task dispatched", "task", task.TaskName(), "taskID", env.ID)
	return shared.TaskHandle{ID: env.ID}, nil
}
