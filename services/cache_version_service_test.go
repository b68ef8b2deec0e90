package services_test

import (
	"fmt"
	"testing"

	"github.com/dmdhrumilmistry/chitragupta/services"
	"github.com/stretchr/testify/assert"
)

type fakeCacheVersionRepository struct {
	versions map[string]int64
	err      error
}

func (f *fakeCacheVersionRepository) Increment(entityKind string) error {
	if f.err != nil {
		return f.err
	}
	f.versions[entityKind]++
	return nil
}

func (f *fakeCacheVersionRepository) Get(entityKind string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.versions[entityKind], nil
}

func TestCacheVersionService(t *testing.T) {
	t.Run("bump changes the version token", func(t *testing.T) {
		repository := &fakeCacheVersionRepository{versions: map[string]int64{}}
		service := services.NewCacheVersionService(repository)

		before := service.CurrentVersion("repo")
		service.Bump("repo")
		after := service.CurrentVersion("repo")

		assert.NotEqual(t, before, after)
		assert.Equal(t, "1", after)
	})

	t.Run("tokens are independent per entity kind", func(t *testing.T) {
		repository := &fakeCacheVersionRepository{versions: map[string]int64{}}
		service := services.NewCacheVersionService(repository)

		service.Bump("repo")
		service.Bump("repo")

		assert.Equal(t, "2", service.CurrentVersion("repo"))
		assert.Equal(t, "0", service.CurrentVersion("secretscanresult"))
	})

	t.Run("a failing store degrades to an empty token", func(t *testing.T) {
		repository := &fakeCacheVersionRepository{versions: map[string]int64{}, err: fmt.Errorf("connection refused")}
		service := services.NewCacheVersionService(repository)

		service.Bump("repo")
		assert.Equal(t, "", service.CurrentVersion("repo"))
	})
}
