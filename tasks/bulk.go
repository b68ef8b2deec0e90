package tasks

import (
	"context"
	"log/slog"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/dmdhrumilmistry/chitragupta/utils"
)

// ScanAllRepos dispatches one independent scan cycle per repository. The
// returned count covers successful dispatches only - whether a cycle succeeds
// is only known asynchronously, per unit.
func (runner *Runner) ScanAllRepos(ctx context.Context, concurrency int, onlyVerified bool) shared.TaskResult {
	repos, err := runner.repoRepository.All()
	if err != nil {
		slog.Error("could not list repos for bulk scan", "err", err)
		return shared.TaskAborted(shared.ReasonStorageError)
	}

	triggered := 0
	for index, repo := range repos {
		slog.Info("triggering scan for repo", "repo", repo.Name, "index", index+1, "total", len(repos))

		_, err := runner.dispatcher.Dispatch(ctx, shared.ScanRepoTask{
			RepoID:       repo.ID,
			Concurrency:  concurrency,
			OnlyVerified: onlyVerified,
		})
		if err != nil {
			slog.Error("could not dispatch scan", "repo", repo.Name, "err", err)
			continue
		}
		triggered++
	}

	result := shared.TaskOK()
	result.TotalReposTriggered = utils.Ptr(triggered)
	return result
}

// SyncUserRepos dispatches one repo-discovery unit per non-organization
// owner.
func (runner *Runner) SyncUserRepos(ctx context.Context) shared.TaskResult {
	users, err := runner.repoOwnerRepository.ListUsers()
	if err != nil {
		slog.Error("could not list users for repo sync", "err", err)
		return shared.TaskAborted(shared.ReasonStorageError)
	}

	triggered := 0
	for index, user := range users {
		slog.Info("syncing repos for user", "user", user.Name, "index", index+1, "total", len(users))

		if _, err := runner.dispatcher.Dispatch(ctx, shared.FetchOwnerReposTask{OwnerID: user.ID}); err != nil {
			slog.Error("could not dispatch repo discovery", "user", user.Name, "err", err)
			continue
		}
		triggered++
	}

	result := shared.TaskOK()
	result.TotalUsersTriggered = utils.Ptr(triggered)
	return result
}
