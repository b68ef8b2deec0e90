package repositories

import (
	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// naturalKey is the column set that identifies one logical finding. Two
// scanner runs over the same history window emit the same tuples, so an
// on-conflict-do-nothing upsert over these columns makes ingestion idempotent.
// The backing index is NULLS NOT DISTINCT (see the model), otherwise the
// conflict target would never match findings with a NULL key column.
var secretScanResultNaturalKey = []clause.Column{
	{Name: "file_path"},
	{Name: "file_line"},
	{Name: "committer_email"},
	{Name: "commit_datetime"},
	{Name: "is_verified"},
	{Name: "repo_id"},
	{Name: "secret_type"},
	{Name: "secret_value"},
}

type secretScanResultRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.SecretScanResult]
}

func NewSecretScanResultRepository(db shared.DB) shared.SecretScanResultRepository {
	autoMigrate(db, &models.SecretScanResult{})
	return &secretScanResultRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.SecretScanResult](db),
	}
}

func (r *secretScanResultRepository) List(filter shared.SecretScanResultFilter, page, pageSize int) ([]models.SecretScanResult, int64, error) {
	q := r.db.Model(&models.SecretScanResult{})
	if filter.RepoName != "" {
		q = q.Joins("JOIN repos ON repos.id = secret_scan_results.repo_id").
			Where("repos.name = ?", filter.RepoName)
	}
	if filter.SecretType != "" {
		q = q.Where("secret_type = ?", filter.SecretType)
	}
	if filter.IsVerified != nil {
		q = q.Where("is_verified = ?", *filter.IsVerified)
	}
	if filter.IsFalsePositive != nil {
		q = q.Where("is_false_positive = ?", *filter.IsFalsePositive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []models.SecretScanResult
	err := q.Scopes(paginate(page, pageSize)).Order("secret_scan_results.created_at DESC").Find(&results).Error
	return results, total, err
}

func (r *secretScanResultRepository) Upsert(result *models.SecretScanResult) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   secretScanResultNaturalKey,
		DoNothing: true,
	}).Create(result)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
