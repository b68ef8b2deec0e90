package controllers

import (
	"time"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SecretScanResultController struct {
	secretScanResultRepository shared.SecretScanResultRepository
	cacheVersionService        shared.CacheVersionService
}

func NewSecretScanResultController(secretScanResultRepository shared.SecretScanResultRepository, cacheVersionService shared.CacheVersionService) *SecretScanResultController {
	return &SecretScanResultController{
		secretScanResultRepository: secretScanResultRepository,
		cacheVersionService:        cacheVersionService,
	}
}

func (c *SecretScanResultController) Read(ctx shared.Context) error {
	id, err := uuid.Parse(ctx.Param("resultID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid scan result id")
	}

	result, err := c.secretScanResultRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find scan result").WithInternal(err)
	}

	return ctx.JSON(200, result)
}

func (c *SecretScanResultController) List(ctx shared.Context) error {
	page, pageSize := pageParams(ctx.QueryParam("page"), ctx.QueryParam("pageSize"))

	filter := shared.SecretScanResultFilter{
		RepoName:        ctx.QueryParam("repoName"),
		SecretType:      ctx.QueryParam("secretType"),
		IsVerified:      boolQueryParam(ctx, "isVerified"),
		IsFalsePositive: boolQueryParam(ctx, "isFalsePositive"),
	}

	results, total, err := c.secretScanResultRepository.List(filter, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(500, "could not list scan results").WithInternal(err)
	}

	return ctx.JSON(200, newListResponse(results, total, page, pageSize))
}

type reviewScanResultRequest struct {
	IsFalsePositive *bool `json:"isFalsePositive"`
	IsRotated       *bool `json:"isRotated"`
}

// Update applies the triage flags a reviewer can change. The finding payload
// itself is immutable once ingested.
func (c *SecretScanResultController) Update(ctx shared.Context) error {
	id, err := uuid.Parse(ctx.Param("resultID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid scan result id")
	}

	var req reviewScanResultRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.IsFalsePositive == nil && req.IsRotated == nil {
		return echo.NewHTTPError(400, "nothing to update")
	}

	result, err := c.secretScanResultRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find scan result").WithInternal(err)
	}

	if req.IsFalsePositive != nil {
		result.IsFalsePositive = *req.IsFalsePositive
	}
	if req.IsRotated != nil {
		result.IsRotated = *req.IsRotated
		if *req.IsRotated {
			now := time.Now()
			result.RotatedAt = &now
		} else {
			result.RotatedAt = nil
		}
	}

	if err := c.secretScanResultRepository.Save(&result); err != nil {
		return echo.NewHTTPError(500, "could not update scan result").WithInternal(err)
	}

	c.cacheVersionService.Bump(shared.CacheKindSecretScanResult)
	return ctx.JSON(200, result)
}
