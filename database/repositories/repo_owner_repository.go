package repositories

import (
	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repoOwnerRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.RepoOwner]
}

func NewRepoOwnerRepository(db shared.DB) shared.RepoOwnerRepository {
	autoMigrate(db, &models.RepoOwner{})
	return &repoOwnerRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.RepoOwner](db),
	}
}

func (r *repoOwnerRepository) Delete(id uuid.UUID) error {
	return r.db.Select(clause.Associations).Delete(&models.RepoOwner{Model: models.Model{ID: id}}).Error
}

func (r *repoOwnerRepository) List(filter shared.RepoOwnerFilter, page, pageSize int) ([]models.RepoOwner, int64, error) {
	q := r.db.Model(&models.RepoOwner{})
	if filter.Platform != "" {
		q = q.Where("platform = ?", filter.Platform)
	}
	if filter.Name != "" {
		q = q.Where("name = ?", filter.Name)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var owners []models.RepoOwner
	err := q.Scopes(paginate(page, pageSize)).Order("created_at DESC").Find(&owners).Error
	return owners, total, err
}

// FindOrCreate upserts an owner on (name, platform). The created flag is
// derived from RowsAffected so redelivered member-sync tasks stay idempotent.
func (r *repoOwnerRepository) FindOrCreate(name string, platform models.RepoPlatform, isOrganization bool) (models.RepoOwner, bool, error) {
	owner := models.RepoOwner{
		Name:           name,
		Platform:       platform,
		IsOrganization: isOrganization,
	}

	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "platform"}},
		DoNothing: true,
	}).Create(&owner)
	if res.Error != nil {
		return owner, false, res.Error
	}

	if res.RowsAffected == 0 {
		// conflict path - read the existing row
		err := r.db.First(&owner, "name = ? AND platform = ?", name, platform).Error
		return owner, false, err
	}
	return owner, true, nil
}

func (r *repoOwnerRepository) ListOrganizations() ([]models.RepoOwner, error) {
	return r.listByOrganizationFlag(true)
}

func (r *repoOwnerRepository) ListUsers() ([]models.RepoOwner, error) {
	return r.listByOrganizationFlag(false)
}

func (r *repoOwnerRepository) listByOrganizationFlag(isOrganization bool) ([]models.RepoOwner, error) {
	var owners []models.RepoOwner
	err := r.db.Where("is_organization = ?", isOrganization).Find(&owners).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return owners, nil
}
