package services

import (
	"log/slog"
	"strconv"

	"github.com/dmdhrumilmistry/chitragupta/shared"
)

// cacheVersionService turns the stored per-entity counters into opaque cache
// tokens. A failed bump is logged, not raised: the worst case is one stale
// cache window, never wrong durable state.
type cacheVersionService struct {
	repository shared.CacheVersionRepository
}

func NewCacheVersionService(repository shared.CacheVersionRepository) shared.CacheVersionService {
	return &cacheVersionService{repository: repository}
}

func (s *cacheVersionService) Bump(entityKind string) {
	if err := s.repository.Increment(entityKind); err != nil {
		slog.Error("could not bump cache version", "entityKind", entityKind, "err", err)
	}
}

func (s *cacheVersionService) CurrentVersion(entityKind string) string {
	version, err := s.repository.Get(entityKind)
	if err != nil {
		slog.Error("could not read cache version", "entityKind", entityKind, "err", err)
		return ""
	}
	return strconv.FormatInt(version, 10)
}
