package repositories

import (
	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type repoRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.Repo]
}

func NewRepoRepository(db shared.DB) shared.RepoRepository {
	autoMigrate(db, &models.Repo{})
	return &repoRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.Repo](db),
	}
}

// Read preloads the owner - scan cycles need the owner name for clone urls
// and commit resolution.
func (r *repoRepository) Read(id uuid.UUID) (models.Repo, error) {
	var repo models.Repo
	err := r.db.Preload("Owner").First(&repo, "id = ?", id).Error
	return repo, err
}

func (r *repoRepository) List(filter shared.RepoFilter, page, pageSize int) ([]models.Repo, int64, error) {
	q := r.db.Model(&models.Repo{}).
		Joins("JOIN repo_owners ON repo_owners.id = repos.owner_id")
	if filter.OwnerName != "" {
		q = q.Where("repo_owners.name = ?", filter.OwnerName)
	}
	if filter.Platform != "" {
		q = q.Where("repos.platform = ?", filter.Platform)
	}
	if filter.IsPrivate != nil {
		q = q.Where("repos.is_private = ?", *filter.IsPrivate)
	}
	if filter.IsFork != nil {
		q = q.Where("repos.is_fork = ?", *filter.IsFork)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var repos []models.Repo
	err := q.Scopes(paginate(page, pageSize)).Order("repos.created_at DESC").Find(&repos).Error
	return repos, total, err
}

func (r *repoRepository) All() ([]models.Repo, error) {
	var repos []models.Repo
	err := r.db.Find(&repos).Error
	return repos, err
}

// FindOrCreate upserts on the repo identity key. On conflict the existing row
// is left untouched - discovery must never clobber scan watermarks.
func (r *repoRepository) FindOrCreate(repo *models.Repo) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "https_url"}},
		DoNothing: true,
	}).Create(repo)
	if res.Error != nil {
		return false, res.Error
	}

	if res.RowsAffected == 0 {
		err := r.db.First(repo,
			"https_url = ? AND ssh_url = ? AND owner_id = ? AND name = ?",
			repo.HTTPSURL, repo.SSHURL, repo.OwnerID, repo.Name,
		).Error
		return false, err
	}
	return true, nil
}
