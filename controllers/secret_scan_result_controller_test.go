package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dmdhrumilmistry/chitragupta/controllers"
	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretScanResultRepository struct {
	results map[uuid.UUID]models.SecretScanResult
	saved   []models.SecretScanResult
}

func newFakeSecretScanResultRepository() *fakeSecretScanResultRepository {
	return &fakeSecretScanResultRepository{results: map[uuid.UUID]models.SecretScanResult{}}
}

func (f *fakeSecretScanResultRepository) Read(id uuid.UUID) (models.SecretScanResult, error) {
	result, ok := f.results[id]
	if !ok {
		return models.SecretScanResult{}, fmt.Errorf("record not found")
	}
	return result, nil
}

func (f *fakeSecretScanResultRepository) Save(result *models.SecretScanResult) error {
	f.results[result.ID] = *result
	f.saved = append(f.saved, *result)
	return nil
}

func (f *fakeSecretScanResultRepository) List(filter shared.SecretScanResultFilter, page, pageSize int) ([]models.SecretScanResult, int64, error) {
	return nil, 0, nil
}

func (f *fakeSecretScanResultRepository) Upsert(result *models.SecretScanResult) (bool, error) {
	return false, nil
}

func seedResult(repository *fakeSecretScanResultRepository) models.SecretScanResult {
	result := models.SecretScanResult{
		FilePath:   "config/settings.py",
		SecretType: "AWS",
		IsVerified: true,
	}
	result.ID = uuid.New()
	repository.results[result.ID] = result
	return result
}

func TestReviewSecretScanResult(t *testing.T) {
	t.Run("marking as rotated stamps the rotation time", func(t *testing.T) {
		repository := newFakeSecretScanResultRepository()
		result := seedResult(repository)
		caches := &fakeCacheVersionService{}
		controller := controllers.NewSecretScanResultController(repository, caches)

		ctx, rec := newJSONContext(t, http.MethodPatch, "/", `{"isRotated":true}`)
		ctx.SetParamNames("resultID")
		ctx.SetParamValues(result.ID.String())

		require.NoError(t, controller.Update(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		updated := repository.results[result.ID]
		assert.True(t, updated.IsRotated)
		require.NotNil(t, updated.RotatedAt)
		assert.Contains(t, caches.bumped, shared.CacheKindSecretScanResult)
	})

	t.Run("unmarking a rotation clears the timestamp", func(t *testing.T) {
		repository := newFakeSecretScanResultRepository()
		result := seedResult(repository)
		controller := controllers.NewSecretScanResultController(repository, &fakeCacheVersionService{})

		ctx, _ := newJSONContext(t, http.MethodPatch, "/", `{"isRotated":true}`)
		ctx.SetParamNames("resultID")
		ctx.SetParamValues(result.ID.String())
		require.NoError(t, controller.Update(ctx))

		ctx, _ = newJSONContext(t, http.MethodPatch, "/", `{"isRotated":false}`)
		ctx.SetParamNames("resultID")
		ctx.SetParamValues(result.ID.String())
		require.NoError(t, controller.Update(ctx))

		updated := repository.results[result.ID]
		assert.False(t, updated.IsRotated)
		assert.Nil(t, updated.RotatedAt)
	})

	t.Run("a false positive flag leaves the rotation state alone", func(t *testing.T) {
		repository := newFakeSecretScanResultRepository()
		result := seedResult(repository)
		controller := controllers.NewSecretScanResultController(repository, &fakeCacheVersionService{})

		ctx, _ := newJSONContext(t, http.MethodPatch, "/", `{"isFalsePositive":true}`)
		ctx.SetParamNames("resultID")
		ctx.SetParamValues(result.ID.String())

		require.NoError(t, controller.Update(ctx))

		updated := repository.results[result.ID]
		assert.True(t, updated.IsFalsePositive)
		assert.False(t, updated.IsRotated)
		assert.Nil(t, updated.RotatedAt)
	})

	t.Run("an empty body is rejected", func(t *testing.T) {
		repository := newFakeSecretScanResultRepository()
		result := seedResult(repository)
		controller := controllers.NewSecretScanResultController(repository, &fakeCacheVersionService{})

		ctx, _ := newJSONContext(t, http.MethodPatch, "/", `{}`)
		ctx.SetParamNames("resultID")
		ctx.SetParamValues(result.ID.String())

		err := controller.Update(ctx)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
		assert.Empty(t, repository.saved)
	})

	t.Run("an unknown result id yields 404", func(t *testing.T) {
		controller := controllers.NewSecretScanResultController(newFakeSecretScanResultRepository(), &fakeCacheVersionService{})

		ctx, _ := newJSONContext(t, http.MethodPatch, "/", `{"isRotated":true}`)
		ctx.SetParamNames("resultID")
		ctx.SetParamValues(uuid.NewString())

		err := controller.Update(ctx)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Code)
	})
}
