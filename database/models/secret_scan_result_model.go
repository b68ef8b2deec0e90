package models

import (
	"time"

	"github.com/dmdhrumilmistry/chitragupta/database"
	"github.com/google/uuid"
)

// SecretScanResult is one detected secret occurrence. The composite unique
// index over the natural key makes re-ingesting the same scanner output line
// a no-op, which is what keeps ingestion safe under at-least-once task
// delivery. Several key columns are nullable (the scanner omits email, line
// or timestamp on some findings), so the index must be declared
// NULLS NOT DISTINCT - with the Postgres default, two rows with a NULL key
// column never conflict and every re-scan would duplicate them.
type SecretScanResult struct {
	Model
	FilePath        string     `json:"filePath" gorm:"uniqueIndex:idx_secret_scan_result_natural_key,option:NULLS NOT DISTINCT;not null"`
	FileLine        *int       `json:"fileLine" gorm:"uniqueIndex:idx_secret_scan_result_natural_key"`
	CommitterEmail  *string    `json:"committerEmail" gorm:"uniqueIndex:idx_secret_scan_result_natural_key"`
	CommitDatetime  *time.Time `json:"commitDatetime" gorm:"uniqueIndex:idx_secret_scan_result_natural_key"`
	IsVerified      bool       `json:"isVerified" gorm:"uniqueIndex:idx_secret_scan_result_natural_key;default:false"`
	RepoID          *uuid.UUID `json:"repoID" gorm:"uniqueIndex:idx_secret_scan_result_natural_key;type:uuid"`
	Repo            *Repo      `json:"-" gorm:"foreignKey:RepoID;constraint:OnDelete:CASCADE;"`
	SecretType      string     `json:"secretType" gorm:"uniqueIndex:idx_secret_scan_result_natural_key;not null"`
	SecretValue     string     `json:"secretValue" gorm:"uniqueIndex:idx_secret_scan_result_natural_key;not null"`
	SecretValueRaw2 string     `json:"secretValueRawv2" gorm:"column:secret_value_rawv2"`

	// full scanner output for the line, kept for forward compatibility
	AdditionalInfo database.JSONB `json:"additionalInfo" gorm:"type:jsonb"`

	IsRotated       bool       `json:"isRotated" gorm:"default:false"`
	RotatedAt       *time.Time `json:"rotatedAt"`
	IsFalsePositive bool       `json:"isFalsePositive" gorm:"default:false"`
}

func (SecretScanResult) TableName() string {
	return "secret_scan_results"
}
