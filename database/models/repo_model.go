package models

import (
	"fmt"

	"github.com/google/uuid"
)

type Repo struct {
	Model
	HTTPSURL string    `json:"httpsUrl" gorm:"uniqueIndex;not null"`
	SSHURL   string    `json:"sshUrl" gorm:"uniqueIndex;not null"`
	OwnerID  uuid.UUID `json:"ownerID" gorm:"not null;type:uuid"`
	Owner    RepoOwner `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Name     string    `json:"name" gorm:"not null"`

	IsFork    bool         `json:"isFork" gorm:"default:false"`
	IsPrivate bool         `json:"isPrivate" gorm:"default:false"`
	SizeInKB  int          `json:"sizeInKb"`
	Platform  RepoPlatform `json:"platform" gorm:"default:'github'"`

	// LatestCommitSHA is the scan watermark: the last commit the scanner has
	// fully processed. It only moves forward, and only after a scan cycle
	// completed without error.
	LatestCommitSHA   string `json:"latestCommitSha" gorm:"default:''"`
	PreviousCommitSHA string `json:"previousCommitSha" gorm:"default:''"`
}

func (Repo) TableName() string {
	return "repos"
}

// AuthenticatedCloneURL returns the clone URL to hand to the scanner. Private
// github repos need the installation token embedded, public ones are cloned
// over the plain https url.
func (repo Repo) AuthenticatedCloneURL(ownerName, token string) string {
	if repo.Platform == PlatformGitHub && repo.IsPrivate {
		return fmt.Sprintf("https://x-access-token:%s@github.com/%s/%s.git", token, ownerName, repo.Name)
	}
	return repo.HTTPSURL
}
