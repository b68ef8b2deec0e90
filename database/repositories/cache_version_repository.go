package repositories

import (
	"errors"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cacheVersionRepository struct {
	db shared.DB
}

func NewCacheVersionRepository(db shared.DB) shared.CacheVersionRepository {
	autoMigrate(db, &models.CacheVersion{})
	return &cacheVersionRepository{db: db}
}

// Increment bumps the version for an entity kind atomically. The row is
// created on first use.
func (r *cacheVersionRepository) Increment(entityKind string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_kind"}},
		DoUpdates: clause.Assignments(map[string]any{"version": gorm.Expr("cache_versions.version + 1")}),
	}).Create(&models.CacheVersion{EntityKind: entityKind, Version: 1}).Error
}

func (r *cacheVersionRepository) Get(entityKind string) (int64, error) {
	var cv models.CacheVersion
	err := r.db.First(&cv, "entity_kind = ?", entityKind).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return cv.Version, nil
}
