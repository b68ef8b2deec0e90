package models

import (
	"time"

	"github.com/dmdhrumilmistry/chitragupta/database"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
	SeverityInfo     Severity = "info"
	SeverityUnknown  Severity = "unknown"
)

type VulnState string

const (
	VulnStateOpen          VulnState = "open"
	VulnStateFixed         VulnState = "fixed"
	VulnStateDismissed     VulnState = "dismissed"
	VulnStateAutoDismissed VulnState = "auto_dismissed"
	VulnStateFalsePositive VulnState = "false_positive"
	VulnStateRotated       VulnState = "rotated"
	VulnStateInProgress    VulnState = "in_progress"
	VulnStateAcceptedRisk  VulnState = "accepted_risk"
)

// Vulnerability is a finding attached to an asset by a separate scanning
// integration (dependabot, codeql, ...). It shares the external-finding
// ingestion shape with SecretScanResult but has its own review lifecycle.
type Vulnerability struct {
	Model
	AssetID uuid.UUID `json:"assetID" gorm:"uniqueIndex:idx_vulnerability_asset_source_external;not null;type:uuid"`
	Asset   Asset     `json:"-" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE;"`

	Source     string `json:"source" gorm:"uniqueIndex:idx_vulnerability_asset_source_external;not null"`
	ExternalID string `json:"externalID" gorm:"uniqueIndex:idx_vulnerability_asset_source_external;not null"`

	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description"`
	Severity    Severity  `json:"severity" gorm:"default:'unknown'"`
	State       VulnState `json:"state" gorm:"default:'open'"`

	FilePath   *string `json:"filePath"`
	LineNumber *int    `json:"lineNumber"`

	PackageName     *string `json:"packageName"`
	AffectedVersion *string `json:"affectedVersion"`
	FixedVersion    *string `json:"fixedVersion"`

	GHSAID     *string        `json:"ghsaID" gorm:"column:ghsa_id"`
	CVEIDs     datatypes.JSON `json:"cveIDs" gorm:"column:cve_ids;type:jsonb"`
	CWEIDs     datatypes.JSON `json:"cweIDs" gorm:"column:cwe_ids;type:jsonb"`
	CVSSScore  *float64       `json:"cvssScore" gorm:"column:cvss_score"`
	CVSSVector *string        `json:"cvssVector" gorm:"column:cvss_vector"`
	References datatypes.JSON `json:"references" gorm:"type:jsonb"`

	LastSeenAt time.Time      `json:"lastSeenAt"`
	RawData    database.JSONB `json:"rawData" gorm:"type:jsonb"`
}

func (Vulnerability) TableName() string {
	return "vulnerabilities"
}
