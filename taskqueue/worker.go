package taskqueue

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/monitoring"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// TaskRunner executes one unit of work to completion. Implemented by the
// tasks package; the worker only routes.
type TaskRunner interface {
	FetchOwnerRepos(ctx context.Context, ownerID uuid.UUID) shared.TaskResult
	ScanRepo(ctx context.Context, repoID uuid.UUID, concurrency int, onlyVerified bool) shared.TaskResult
	SyncOrgMembers(ctx context.Context) shared.TaskResult
	ScanAllRepos(ctx context.Context, concurrency int, onlyVerified bool) shared.TaskResult
	SyncUserRepos(ctx context.Context) shared.TaskResult
}

// Worker holds one dedicated LISTEN connection and executes tasks as they
// arrive. Units run linearly; parallelism comes from running more workers.
type Worker struct {
	pool   *pgxpool.Pool
	runner TaskRunner
}

func NewWorker(pool *pgxpool.Pool, runner TaskRunner) *Worker {
	return &Worker{pool: pool, runner: runner}
}

// Reconnect pacing after a lost LISTEN connection, same window pq.NewListener
// uses for its own retries.
const (
	reconnectMinInterval = 10 * time.Second
	reconnectMaxInterval = time.Minute
)

func nextReconnectDelay(current time.Duration) time.Duration {
	next := current * 2
	if next > reconnectMaxInterval {
		return reconnectMaxInterval
	}
	return next
}

// Start acquires the LISTEN connection and processes notifications until the
// context is cancelled. It returns after the initial subscription is
// established; a later connection loss (server restart, failover) is retried
// with backoff instead of ending the worker, so the process never keeps
// serving HTTP with a silently dead task path.
func (w *Worker) Start(ctx context.Context) error {
	conn, err := w.listen(ctx)
	if err != nil {
		return err
	}

	go func() {
		for {
			err := w.consume(ctx, conn)
			conn.Release()
			if ctx.Err() != nil {
				return
			}
			monitoring.Alert("task listener lost its connection", err)

			delay := reconnectMinInterval
			for {
				select {
				case <-ctx.Done():
					return
				case <-time.After(delay):
				}

				conn, err = w.listen(ctx)
				if err == nil {
					break
				}
				slog.Error("could not re-establish task listener", "err", err, "retryIn", delay)
				delay = nextReconnectDelay(delay)
			}
			slog.Info("task listener reconnected", "channel", tasksChannel)
		}
	}()

	slog.Info("task worker listening", "channel", tasksChannel)
	return nil
}

func (w *Worker) listen(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conn, err := w.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, errors.Wrap(err, "could not acquire connection for listening")
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pq.QuoteIdentifier(tasksChannel)); err != nil {
		conn.Release()
		return nil, errors.Wrapf(err, "could not listen on %s", tasksChannel)
	}

	return conn, nil
}

// consume processes notifications until the connection fails or the context
// is cancelled. The connection is not usable afterwards.
func (w *Worker) consume(ctx context.Context, conn *pgxpool.Conn) error {
	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		env, task, err := decodeTask([]byte(notification.Payload))
		if err != nil {
			slog.Error("failed to decode task", "err", err, "payload", notification.Payload)
			continue
		}

		w.execute(ctx, env, task)
	}
}

func (w *Worker) execute(ctx context.Context, env envelope, task shared.Task) {
	start := time.Now()
	var result shared.TaskResult

	switch t := task.(type) {
	case shared.FetchOwnerReposTask:
		result = w.runner.FetchOwnerRepos(ctx, t.OwnerID)
	case shared.ScanRepoTask:
		result = w.runner.ScanRepo(ctx, t.RepoID, t.Concurrency, t.OnlyVerified)
	case shared.SyncOrgMembersTask:
		result = w.runner.SyncOrgMembers(ctx)
	case shared.ScanAllReposTask:
		result = w.runner.ScanAllRepos(ctx, t.Concurrency, t.OnlyVerified)
	case shared.SyncUserReposTask:
		result = w.runner.SyncUserRepos(ctx)
	}

	if result.OK {
		slog.Info("task completed", "task", env.Name, "taskID", env.ID, "duration", time.Since(start))
	} else {
		slog.Error("task failed", "task", env.Name, "taskID", env.ID, "reason", result.Reason, "duration", time.Since(start))
	}
}
