package models

import "github.com/google/uuid"

type AssetStatus string

const (
	AssetStatusActive     AssetStatus = "active"
	AssetStatusInactive   AssetStatus = "inactive"
	AssetStatusDeprecated AssetStatus = "deprecated"
)

type Asset struct {
	Model
	Name      string      `json:"name" gorm:"not null"`
	Domain    string      `json:"domain"`
	IP        *string     `json:"ip"`
	IPVersion *string     `json:"ipVersion"`
	Status    AssetStatus `json:"status" gorm:"default:'active'"`
	RepoID    *uuid.UUID  `json:"repoID" gorm:"type:uuid"`
	Repo      *Repo       `json:"-" gorm:"foreignKey:RepoID;constraint:OnDelete:CASCADE;"`
}

func (Asset) TableName() string {
	return "assets"
}
