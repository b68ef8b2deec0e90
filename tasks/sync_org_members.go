package tasks

import (
	"context"
	"log/slog"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
)

// SyncOrgMembers walks all organization owners and upserts each member as a
// non-organization owner. Organizations on unsupported platforms are skipped
// with a log note, not an error; a failing organization or member never stops
// the iteration.
func (runner *Runner) SyncOrgMembers(ctx context.Context) shared.TaskResult {
	organizations, err := runner.repoOwnerRepository.ListOrganizations()
	if err != nil {
		slog.Error("could not list organizations", "err", err)
		return shared.TaskAborted(shared.ReasonForgeError)
	}

	createdAny := false
	for _, org := range organizations {
		if !models.SupportedPlatform(org.Platform) {
			slog.Info("skipping organization on unsupported platform", "org", org.Name, "platform", org.Platform)
			continue
		}

		members, err := runner.forgeClient.ListMembers(ctx, org.Name)
		if err != nil {
			slog.Error("could not list organization members", "org", org.Name, "err", err)
			continue
		}

		for _, member := range members {
			owner, created, err := runner.repoOwnerRepository.FindOrCreate(member.Login, org.Platform, false)
			if err != nil {
				slog.Error("error creating repo owner for member", "member", member.Login, "err", err)
				continue
			}

			if !created {
				slog.Info("repo owner already exists for member", "member", member.Login, "ownerID", owner.ID)
				continue
			}

			slog.Info("created repo owner for member", "member", member.Login, "ownerID", owner.ID)
			createdAny = true

			// newly discovered owners get their repositories fetched right
			// away - explicit dispatch, no save hooks
			if _, err := runner.dispatcher.Dispatch(ctx, shared.FetchOwnerReposTask{OwnerID: owner.ID}); err != nil {
				slog.Error("could not dispatch repo discovery for new owner", "owner", owner.Name, "err", err)
			}
		}
	}

	if createdAny {
		runner.cacheVersionService.Bump(shared.CacheKindRepoOwner)
	}

	return shared.TaskOK()
}
