package repositories

import (
	"time"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type vulnerabilityRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.Vulnerability]
}

func NewVulnerabilityRepository(db shared.DB) shared.VulnerabilityRepository {
	autoMigrate(db, &models.Vulnerability{})
	return &vulnerabilityRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.Vulnerability](db),
	}
}

func (r *vulnerabilityRepository) List(filter shared.VulnerabilityFilter, page, pageSize int) ([]models.Vulnerability, int64, error) {
	q := r.db.Model(&models.Vulnerability{})
	if filter.AssetID != nil {
		q = q.Where("asset_id = ?", *filter.AssetID)
	}
	if filter.Severity != "" {
		q = q.Where("severity = ?", filter.Severity)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}
	if filter.Source != "" {
		q = q.Where("source = ?", filter.Source)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vulnerabilities []models.Vulnerability
	err := q.Scopes(paginate(page, pageSize)).Order("vulnerabilities.created_at DESC").Find(&vulnerabilities).Error
	return vulnerabilities, total, err
}

func (r *vulnerabilityRepository) Upsert(vulnerability *models.Vulnerability) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "asset_id"},
			{Name: "source"},
			{Name: "external_id"},
		},
		DoNothing: true,
	}).Create(vulnerability)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// already known: refresh the sighting timestamp on the existing row
	err := r.db.Model(&models.Vulnerability{}).
		Where("asset_id = ? AND source = ? AND external_id = ?",
			vulnerability.AssetID, vulnerability.Source, vulnerability.ExternalID).
		Update("last_seen_at", time.Now()).Error
	return false, err
}
