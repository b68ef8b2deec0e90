package controllers

import (
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type VulnerabilityController struct {
	vulnerabilityRepository shared.VulnerabilityRepository
}

func NewVulnerabilityController(vulnerabilityRepository shared.VulnerabilityRepository) *VulnerabilityController {
	return &VulnerabilityController{vulnerabilityRepository: vulnerabilityRepository}
}

func (c *VulnerabilityController) Read(ctx shared.Context) error {
	id, err := uuid.Parse(ctx.Param("vulnID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid vulnerability id")
	}

	vulnerability, err := c.vulnerabilityRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find vulnerability").WithInternal(err)
	}

	return ctx.JSON(200, vulnerability)
}

func (c *VulnerabilityController) List(ctx shared.Context) error {
	page, pageSize := pageParams(ctx.QueryParam("page"), ctx.QueryParam("pageSize"))

	filter := shared.VulnerabilityFilter{
		Severity: ctx.QueryParam("severity"),
		State:    ctx.QueryParam("state"),
		Source:   ctx.QueryParam("source"),
	}
	if raw := ctx.QueryParam("assetID"); raw != "" {
		assetID, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(400, "invalid asset id")
		}
		filter.AssetID = &assetID
	}

	vulnerabilities, total, err := c.vulnerabilityRepository.List(filter, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(500, "could not list vulnerabilities").WithInternal(err)
	}

	return ctx.JSON(200, newListResponse(vulnerabilities, total, page, pageSize))
}
