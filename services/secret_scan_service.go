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

package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/monitoring"
	"github.com/dmdhrumilmistry/chitragupta/scanner"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/dmdhrumilmistry/chitragupta/utils"
)

// vulnSourceSecretScan marks vulnerability rows that originate from the
// secret scanner rather than an external alert feed.
const vulnSourceSecretScan = "secret_scan"

type SecretScanService struct {
	secretScanResultRepository shared.SecretScanResultRepository
	assetRepository            shared.AssetRepository
	vulnerabilityRepository    shared.VulnerabilityRepository
	cacheVersionService        shared.CacheVersionService
}

func NewSecretScanService(
	secretScanResultRepository shared.SecretScanResultRepository,
	assetRepository shared.AssetRepository,
	vulnerabilityRepository shared.VulnerabilityRepository,
	cacheVersionService shared.CacheVersionService,
) *SecretScanService {
	return &SecretScanService{
		secretScanResultRepository: secretScanResultRepository,
		assetRepository:            assetRepository,
		vulnerabilityRepository:    vulnerabilityRepository,
		cacheVersionService:        cacheVersionService,
	}
}

var _ shared.FindingIngester = (*SecretScanService)(nil)

// IngestOutput walks the scanner output line by line and upserts every
// finding. A malformed line or a failed row write is logged and skipped - a
// partial ingestion is fine, the scan-level verdict is made by the caller on
// the scanner step alone.
func (s *SecretScanService) IngestOutput(repo models.Repo, output string) int {
	ingested := 0
	var verified []models.SecretScanResult

	for _, line := range strings.Split(output, "\n") {
		if !scanner.IsFindingLine(line) {
			continue
		}

		finding, err := scanner.ParseFinding(line)
		if err != nil {
			slog.Warn("failed to decode finding line", "line", line, "err", err)
			continue
		}

		result := models.SecretScanResult{
			FilePath:        finding.FilePath,
			FileLine:        finding.FileLine,
			CommitterEmail:  utils.EmptyThenNil(finding.CommitterEmail),
			CommitDatetime:  finding.CommitDatetime,
			IsVerified:      finding.IsVerified,
			RepoID:          utils.Ptr(repo.ID),
			SecretType:      finding.DetectorName,
			SecretValue:     finding.Raw,
			SecretValueRaw2: finding.RawV2,
			AdditionalInfo:  finding.AdditionalInfo,
		}

		created, err := s.secretScanResultRepository.Upsert(&result)
		if err != nil {
			slog.Error("error saving secret scan result", "line", line, "err", err)
			continue
		}

		if created {
			slog.Info("created secret scan result", "filePath", result.FilePath, "secretType", result.SecretType)
			monitoring.SecretScanResultsCreated.Inc()
			ingested++
			if result.IsVerified {
				verified = append(verified, result)
			}
		} else {
			slog.Info("secret scan result already exists", "filePath", result.FilePath, "secretType", result.SecretType)
		}
	}

	s.recordVerifiedAsVulnerabilities(repo, verified)

	if ingested > 0 {
		s.cacheVersionService.Bump(shared.CacheKindSecretScanResult)
	}

	return ingested
}

// recordVerifiedAsVulnerabilities mirrors verified findings onto the repo's
// asset as open vulnerability rows. A verified leak is an exploitable issue
// on the asset, so it shows up in the vulnerability listing next to findings
// from other sources. Failures here never affect the ingestion count.
func (s *SecretScanService) recordVerifiedAsVulnerabilities(repo models.Repo, results []models.SecretScanResult) {
	if len(results) == 0 {
		return
	}

	asset, err := s.assetRepository.GetByRepoID(repo.ID)
	if err != nil {
		slog.Error("could not resolve asset for verified findings", "repo", repo.Name, "err", err)
		return
	}

	for _, result := range results {
		vulnerability := models.Vulnerability{
			AssetID:    asset.ID,
			Source:     vulnSourceSecretScan,
			ExternalID: findingExternalID(result),
			Title:      fmt.Sprintf("Verified %s secret in %s", result.SecretType, result.FilePath),
			Severity:   models.SeverityCritical,
			State:      models.VulnStateOpen,
			FilePath:   utils.Ptr(result.FilePath),
			LineNumber: result.FileLine,
			LastSeenAt: time.Now(),
		}

		created, err := s.vulnerabilityRepository.Upsert(&vulnerability)
		if err != nil {
			slog.Error("could not record vulnerability for verified finding", "filePath", result.FilePath, "err", err)
			continue
		}
		if created {
			slog.Info("recorded vulnerability for verified finding", "filePath", result.FilePath, "secretType", result.SecretType)
		}
	}
}

// findingExternalID derives a stable identifier from the finding itself, so
// re-recording the same leak upserts instead of duplicating.
func findingExternalID(result models.SecretScanResult) string {
	sum := sha256.Sum256([]byte(result.FilePath + "\x00" + result.SecretType + "\x00" + result.SecretValue))
	return hex.EncodeToString(sum[:])
}
