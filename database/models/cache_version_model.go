package models

// CacheVersion backs the list-response cache invalidation tokens. One row per
// entity kind; every mutation of that kind bumps the version, which rotates
// every cache key derived from it.
type CacheVersion struct {
	EntityKind string `json:"entityKind" gorm:"primarykey"`
	Version    int64  `json:"version" gorm:"default:0"`
}

func (CacheVersion) TableName() string {
	return "cache_versions"
}
