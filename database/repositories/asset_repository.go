package repositories

import (
	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
)

type assetRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.Asset]
}

func NewAssetRepository(db shared.DB) shared.AssetRepository {
	autoMigrate(db, &models.Asset{})
	return &assetRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.Asset](db),
	}
}

func (r *assetRepository) GetByRepoID(repoID uuid.UUID) (models.Asset, error) {
	var asset models.Asset
	err := r.db.First(&asset, "repo_id = ?", repoID).Error
	return asset, err
}
