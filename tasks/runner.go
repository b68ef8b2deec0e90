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
	"github.com/dmdhrumilmistry/chitragupta/shared"
)

// Runner executes the asynchronous units of work: one scan cycle for a single
// repo, and the fleet fan-outs that dispatch one independent task per entity.
// Every method runs to completion and reports a structured TaskResult - the
// worker has no enclosing handler, so nothing may escape as a panic.
type Runner struct {
	repoOwnerRepository shared.RepoOwnerRepository
	repoRepository      shared.RepoRepository
	assetRepository     shared.AssetRepository
	forgeClient         shared.ForgeClient
	secretScanner       shared.SecretScanner
	ingester            shared.FindingIngester
	dispatcher          shared.TaskDispatcher
	cacheVersionService shared.CacheVersionService
}

func NewRunner(
	repoOwnerRepository shared.RepoOwnerRepository,
	repoRepository shared.RepoRepository,
	assetRepository shared.AssetRepository,
	forgeClient shared.ForgeClient,
	secretScanner shared.SecretScanner,
	ingester shared.FindingIngester,
	dispatcher shared.TaskDispatcher,
	cacheVersionService shared.CacheVersionService,
) *Runner {
	return &Runner{
		repoOwnerRepository: repoOwnerRepository,
		repoRepository:      repoRepository,
		assetRepository:     assetRepository,
		forgeClient:         forgeClient,
		secretScanner:       secretScanner,
		ingester:            ingester,
		dispatcher:          dispatcher,
		cacheVersionService: cacheVersionService,
	}
}
