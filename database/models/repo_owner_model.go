package models

type RepoPlatform string

const (
	PlatformGitHub RepoPlatform = "github"
	// Owners can be stored with other platform values, but only github
	// has a forge integration.
)

// SupportedPlatform reports whether a forge integration exists for the
// platform. Owners on unsupported platforms are skipped during sync, not
// treated as errors.
func SupportedPlatform(p RepoPlatform) bool {
	return p == PlatformGitHub
}

type RepoOwner struct {
	Model
	Name           string       `json:"name" gorm:"uniqueIndex:idx_repo_owner_name_platform;not null"`
	Platform       RepoPlatform `json:"platform" gorm:"uniqueIndex:idx_repo_owner_name_platform;default:'github'"`
	IsOrganization bool         `json:"isOrganization" gorm:"default:false"`

	Repos []Repo `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
}

func (RepoOwner) TableName() string {
	return "repo_owners"
}
