package shared

import (
	"context"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/google/uuid"
)

// RemoteRepo is one repository as listed by the forge platform.
type RemoteRepo struct {
	CloneURL string
	SSHURL   string
	Name     string
	FullName string
	Fork     bool
	Private  bool
	SizeInKB int
}

// RemoteUser is one member of a forge organization.
type RemoteUser struct {
	Login string
}

// ForgeClient is the capability the core consumes from the hosting platform:
// listing, token issuance for authenticated clone urls and commit resolution
// for the scan watermark.
type ForgeClient interface {
	ListRepos(ctx context.Context, owner string) ([]RemoteRepo, error)
	ListMembers(ctx context.Context, org string) ([]RemoteUser, error)
	InstallationToken(ctx context.Context) (string, error)
	LatestCommitSHA(ctx context.Context, owner, repo string, until time.Time) (string, error)
}

type RepoOwnerFilter struct {
	Platform string
	Name     string
}

type RepoOwnerRepository interface {
	Create(owner *models.RepoOwner) error
	Read(id uuid.UUID) (models.RepoOwner, error)
	Delete(id uuid.UUID) error
	List(filter RepoOwnerFilter, page, pageSize int) ([]models.RepoOwner, int64, error)
	FindOrCreate(name string, platform models.RepoPlatform, isOrganization bool) (models.RepoOwner, bool, error)
	ListOrganizations() ([]models.RepoOwner, error)
	ListUsers() ([]models.RepoOwner, error)
}

type RepoFilter struct {
	OwnerName string
	Platform  string
	IsPrivate *bool
	IsFork    *bool
}

type RepoRepository interface {
	Read(id uuid.UUID) (models.Repo, error)
	Save(repo *models.Repo) error
	List(filter RepoFilter, page, pageSize int) ([]models.Repo, int64, error)
	All() ([]models.Repo, error)
	// FindOrCreate upserts on the repo identity key (https url, ssh url,
	// owner, name). Defaults are only applied on first creation.
	FindOrCreate(repo *models.Repo) (created bool, err error)
}

type SecretScanResultFilter struct {
	RepoName        string
	SecretType      string
	IsVerified      *bool
	IsFalsePositive *bool
}

type SecretScanResultRepository interface {
	Read(id uuid.UUID) (models.SecretScanResult, error)
	Save(result *models.SecretScanResult) error
	List(filter SecretScanResultFilter, page, pageSize int) ([]models.SecretScanResult, int64, error)
	// Upsert creates the row unless one with the same natural key exists.
	Upsert(result *models.SecretScanResult) (created bool, err error)
}

type AssetRepository interface {
	Create(asset *models.Asset) error
	GetByRepoID(repoID uuid.UUID) (models.Asset, error)
}

type VulnerabilityFilter struct {
	AssetID  *uuid.UUID
	Severity string
	State    string
	Source   string
}

type VulnerabilityRepository interface {
	Read(id uuid.UUID) (models.Vulnerability, error)
	Save(vulnerability *models.Vulnerability) error
	List(filter VulnerabilityFilter, page, pageSize int) ([]models.Vulnerability, int64, error)
	// Upsert creates the row unless one for the same (asset, source,
	// external id) exists; an existing row gets its LastSeenAt refreshed.
	Upsert(vulnerability *models.Vulnerability) (created bool, err error)
}

type CacheVersionRepository interface {
	Increment(entityKind string) error
	Get(entityKind string) (int64, error)
}

const (
	CacheKindRepoOwner        = "repoowner"
	CacheKindRepo             = "repo"
	CacheKindSecretScanResult = "secretscanresult"
)

// CacheVersionService hands out version tokens for list-response caching and
// bumps them on mutation. Injected into the HTTP layer instead of being
// process-global state.
type CacheVersionService interface {
	Bump(entityKind string)
	CurrentVersion(entityKind string) string
}

// ScanOptions control one scanner invocation. Concurrency is the scanner's
// internal parallelism, not the orchestrator's.
type ScanOptions struct {
	SinceCommit  string
	Concurrency  int
	OnlyVerified bool
}

// SecretScanner drives the external secret-scanning tool against a clone url
// and returns its combined output.
type SecretScanner interface {
	Scan(ctx context.Context, cloneURL string, opts ScanOptions) (string, error)
}

// FindingIngester persists scanner output lines for a repo and returns the
// number of findings ingested. Per-line failures never abort the rest.
type FindingIngester interface {
	IngestOutput(repo models.Repo, output string) int
}
