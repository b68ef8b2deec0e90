package tasks

import (
	"context"
	"log/slog"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/dmdhrumilmistry/chitragupta/utils"
	"github.com/google/uuid"
)

// FetchOwnerRepos discovers all remote repositories of one owner and upserts
// them locally. Existing repos are left untouched - the defaults from the
// remote listing only apply on first creation. One repo failing never blocks
// its siblings.
func (runner *Runner) FetchOwnerRepos(ctx context.Context, ownerID uuid.UUID) shared.TaskResult {
	owner, err := runner.repoOwnerRepository.Read(ownerID)
	if err != nil {
		slog.Error("repo owner does not exist", "ownerID", ownerID, "err", err)
		return shared.TaskAborted(shared.ReasonOwnerNotFound)
	}
	slog.Info("fetched repo owner", "owner", owner.Name, "platform", owner.Platform)

	remoteRepos, err := runner.forgeClient.ListRepos(ctx, owner.Name)
	if err != nil {
		slog.Error("could not list remote repositories", "owner", owner.Name, "err", err)
		return shared.TaskAborted(shared.ReasonForgeError)
	}

	createdAny := false
	for _, remote := range remoteRepos {
		repo := models.Repo{
			HTTPSURL:  remote.CloneURL,
			SSHURL:    remote.SSHURL,
			OwnerID:   owner.ID,
			Name:      remote.Name,
			IsFork:    remote.Fork,
			IsPrivate: remote.Private,
			SizeInKB:  remote.SizeInKB,
			Platform:  owner.Platform,
		}

		created, err := runner.repoRepository.FindOrCreate(&repo)
		if err != nil {
			slog.Error("error creating repo", "repo", remote.FullName, "err", err)
			continue
		}

		if !created {
			slog.Info("repo already exists", "repoID", repo.ID, "repo", remote.FullName)
			continue
		}

		slog.Info("created repo", "repo", remote.FullName)
		createdAny = true

		// every repo gets a 1:1 asset so vulnerability integrations have an
		// attachment point
		asset := models.Asset{
			Name:   remote.FullName,
			Domain: remote.CloneURL,
			Status: models.AssetStatusActive,
			RepoID: utils.Ptr(repo.ID),
		}
		if err := runner.assetRepository.Create(&asset); err != nil {
			slog.Error("error creating asset for repo", "repo", remote.FullName, "err", err)
		}
	}

	if createdAny {
		runner.cacheVersionService.Bump(shared.CacheKindRepo)
	}

	return shared.TaskOK()
}
