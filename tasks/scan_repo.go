// Copyright (C) 2025 Dhrumil Mistry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/monitoring"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
)

// ScanRepo runs one full scan cycle for a single repository: resolve
// credentials, run the scanner, ingest its output and advance the commit
// watermark. The watermark only moves if the scanner step completed without
// error - a failed cycle leaves the repo untouched so an external retry
// resumes from the same point.
//
// NOTE: nothing guards against two concurrent cycles for the same repo (a
// manual trigger racing a scheduled one). Inherited behavior - by convention
// at most one scan unit per repo is in flight.
func (runner *Runner) ScanRepo(ctx context.Context, repoID uuid.UUID, concurrency int, onlyVerified bool) shared.TaskResult {
	start := time.Now()

	repo, err := runner.repoRepository.Read(repoID)
	if err != nil {
		slog.Error("repo does not exist", "repoID", repoID, "err", err)
		return shared.TaskAborted(shared.ReasonRepoNotFound)
	}

	cloneURL := repo.HTTPSURL
	if repo.IsPrivate {
		token, err := runner.forgeClient.InstallationToken(ctx)
		if err != nil {
			slog.Error("could not resolve credentials for scan", "repoID", repoID, "err", err)
			monitoring.ScansTotal.WithLabelValues("credential_error").Inc()
			return shared.TaskAborted(shared.ReasonCredentialError)
		}
		cloneURL = repo.AuthenticatedCloneURL(repo.Owner.Name, token)
	}

	// recorded before the scanner starts so the new watermark can never point
	// past what this cycle has seen
	until := time.Now()

	output, err := runner.secretScanner.Scan(ctx, cloneURL, shared.ScanOptions{
		SinceCommit:  repo.LatestCommitSHA,
		Concurrency:  concurrency,
		OnlyVerified: onlyVerified,
	})
	if err != nil {
		slog.Error("error scanning repo",
			"repo", repo.Name, "owner", repo.Owner.Name, "sinceCommit", repo.LatestCommitSHA, "err", err)
		monitoring.ScansTotal.WithLabelValues("scan_error").Inc()
		return shared.TaskAborted(shared.ReasonScanError)
	}

	ingested := runner.ingester.IngestOutput(repo, output)
	slog.Info("trufflehog scan completed", "repo", repo.HTTPSURL, "findingsIngested", ingested)

	// a failure while resolving the new watermark counts as a scan-level
	// failure: previous and latest sha are only ever written together
	latestSHA, err := runner.forgeClient.LatestCommitSHA(ctx, repo.Owner.Name, repo.Name, until)
	if err != nil {
		slog.Error("could not resolve watermark commit", "repo", repo.Name, "owner", repo.Owner.Name, "err", err)
		monitoring.ScansTotal.WithLabelValues("scan_error").Inc()
		return shared.TaskAborted(shared.ReasonScanError)
	}

	repo.PreviousCommitSHA = repo.LatestCommitSHA
	repo.LatestCommitSHA = latestSHA
	if err := runner.repoRepository.Save(&repo); err != nil {
		slog.Error("could not persist advanced watermark", "repo", repo.Name, "err", err)
		monitoring.ScansTotal.WithLabelValues("scan_error").Inc()
		return shared.TaskAborted(shared.ReasonScanError)
	}
	runner.cacheVersionService.Bump(shared.CacheKindRepo)

	monitoring.ScansTotal.WithLabelValues("ok").Inc()
	monitoring.ScanDuration.Observe(time.Since(start).Minutes())
	return shared.TaskOK()
}
