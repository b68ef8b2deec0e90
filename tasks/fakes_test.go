package tasks_test

import (
	"context"
	"fmt"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
)

type fakeRepoOwnerRepository struct {
	owners        map[uuid.UUID]models.RepoOwner
	organizations []models.RepoOwner
	users         []models.RepoOwner
	listErr       error

	findOrCreateCalls []string
	existing          map[string]models.RepoOwner
}

func newFakeRepoOwnerRepository() *fakeRepoOwnerRepository {
	return &fakeRepoOwnerRepository{
		owners:   map[uuid.UUID]models.RepoOwner{},
		existing: map[string]models.RepoOwner{},
	}
}

func (f *fakeRepoOwnerRepository) Create(owner *models.RepoOwner) error {
	owner.ID = uuid.New()
	f.owners[owner.ID] = *owner
	return nil
}

func (f *fakeRepoOwnerRepository) Read(id uuid.UUID) (models.RepoOwner, error) {
	owner, ok := f.owners[id]
	if !ok {
		return models.RepoOwner{}, fmt.Errorf("record not found")
	}
	return owner, nil
}

func (f *fakeRepoOwnerRepository) Delete(id uuid.UUID) error {
	delete(f.owners, id)
	return nil
}

func (f *fakeRepoOwnerRepository) List(filter shared.RepoOwnerFilter, page, pageSize int) ([]models.RepoOwner, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepoOwnerRepository) FindOrCreate(name string, platform models.RepoPlatform, isOrganization bool) (models.RepoOwner, bool, error) {
	f.findOrCreateCalls = append(f.findOrCreateCalls, name)
	if owner, ok := f.existing[name]; ok {
		return owner, false, nil
	}
	owner := models.RepoOwner{Name: name, Platform: platform, IsOrganization: isOrganization}
	owner.ID = uuid.New()
	f.owners[owner.ID] = owner
	f.existing[name] = owner
	return owner, true, nil
}

func (f *fakeRepoOwnerRepository) ListOrganizations() ([]models.RepoOwner, error) {
	return f.organizations, f.listErr
}

func (f *fakeRepoOwnerRepository) ListUsers() ([]models.RepoOwner, error) {
	return f.users, f.listErr
}

type fakeRepoRepository struct {
	repos   map[uuid.UUID]models.Repo
	all     []models.Repo
	allErr  error
	saveErr error
	saved   []models.Repo

	existingURLs      map[string]models.Repo
	findOrCreateErrOn string
}

func newFakeRepoRepository() *fakeRepoRepository {
	return &fakeRepoRepository{
		repos:        map[uuid.UUID]models.Repo{},
		existingURLs: map[string]models.Repo{},
	}
}

func (f *fakeRepoRepository) Read(id uuid.UUID) (models.Repo, error) {
	repo, ok := f.repos[id]
	if !ok {
		return models.Repo{}, fmt.Errorf("record not found")
	}
	return repo, nil
}

func (f *fakeRepoRepository) Save(repo *models.Repo) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.repos[repo.ID] = *repo
	f.saved = append(f.saved, *repo)
	return nil
}

func (f *fakeRepoRepository) List(filter shared.RepoFilter, page, pageSize int) ([]models.Repo, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepoRepository) All() ([]models.Repo, error) {
	return f.all, f.allErr
}

func (f *fakeRepoRepository) FindOrCreate(repo *models.Repo) (bool, error) {
	if f.findOrCreateErrOn != "" && repo.HTTPSURL == f.findOrCreateErrOn {
		return false, fmt.Errorf("duplicated key not allowed")
	}
	if existing, ok := f.existingURLs[repo.HTTPSURL]; ok {
		*repo = existing
		return false, nil
	}
	repo.ID = uuid.New()
	f.repos[repo.ID] = *repo
	f.existingURLs[repo.HTTPSURL] = *repo
	return true, nil
}

type fakeAssetRepository struct {
	created   []models.Asset
	createErr error
}

func (f *fakeAssetRepository) Create(asset *models.Asset) error {
	if f.createErr != nil {
		return f.createErr
	}
	asset.ID = uuid.New()
	f.created = append(f.created, *asset)
	return nil
}

func (f *fakeAssetRepository) GetByRepoID(repoID uuid.UUID) (models.Asset, error) {
	return models.Asset{}, fmt.Errorf("record not found")
}

type fakeForgeClient struct {
	repos      []shared.RemoteRepo
	reposErr   error
	members    map[string][]shared.RemoteUser
	membersErr map[string]error
	token      string
	tokenErr   error
	latestSHA  string
	latestErr  error
}

func (f *fakeForgeClient) ListRepos(ctx context.Context, owner string) ([]shared.RemoteRepo, error) {
	return f.repos, f.reposErr
}

func (f *fakeForgeClient) ListMembers(ctx context.Context, org string) ([]shared.RemoteUser, error) {
	if err, ok := f.membersErr[org]; ok {
		return nil, err
	}
	return f.members[org], nil
}

func (f *fakeForgeClient) InstallationToken(ctx context.Context) (string, error) {
	return f.token, f.tokenErr
}

func (f *fakeForgeClient) LatestCommitSHA(ctx context.Context, owner, repo string, until time.Time) (string, error) {
	return f.latestSHA, f.latestErr
}

type fakeSecretScanner struct {
	output  string
	err     error
	lastURL string
	lastOpt shared.ScanOptions
}

func (f *fakeSecretScanner) Scan(ctx context.Context, cloneURL string, opts shared.ScanOptions) (string, error) {
	f.lastURL = cloneURL
	f.lastOpt = opts
	return f.output, f.err
}

type fakeIngester struct {
	ingested  int
	lastInput string
	calls     int
}

func (f *fakeIngester) IngestOutput(repo models.Repo, output string) int {
	f.calls++
	f.lastInput = output
	return f.ingested
}

type fakeDispatcher struct {
	dispatched []shared.Task
	failOn     func(task shared.Task) bool
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, task shared.Task) (shared.TaskHandle, error) {
	if f.failOn != nil && f.failOn(task) {
		return shared.TaskHandle{}, fmt.Errorf("connection refused")
	}
	f.dispatched = append(f.dispatched, task)
	return shared.TaskHandle{ID: uuid.New()}, nil
}

type fakeCacheVersionService struct {
	bumped []string
}

func (f *fakeCacheVersionService) Bump(entityKind string) {
	f.bumped = append(f.bumped, entityKind)
}

func (f *fakeCacheVersionService) CurrentVersion(entityKind string) string {
	return "1"
}
