// Copyright (C) 2024 Dhrumil Mistry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package controllers

import (
	"log/slog"

	"github.com/dmdhrumilmistry/chitragupta/database"
	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RepoOwnerController struct {
	repoOwnerRepository shared.RepoOwnerRepository
	dispatcher          shared.TaskDispatcher
	cacheVersionService shared.CacheVersionService
}

func NewRepoOwnerController(repoOwnerRepository shared.RepoOwnerRepository, dispatcher shared.TaskDispatcher, cacheVersionService shared.CacheVersionService) *RepoOwnerController {
	return &RepoOwnerController{
		repoOwnerRepository: repoOwnerRepository,
		dispatcher:          dispatcher,
		cacheVersionService: cacheVersionService,
	}
}

type createRepoOwnerRequest struct {
	Name           string `json:"name" validate:"required"`
	Platform       string `json:"platform" validate:"required"`
	IsOrganization bool   `json:"isOrganization"`
}

func (c *RepoOwnerController) Create(ctx shared.Context) error {
	var req createRepoOwnerRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	owner := models.RepoOwner{
		Name:           req.Name,
		Platform:       models.RepoPlatform(req.Platform),
		IsOrganization: req.IsOrganization,
	}

	if err := c.repoOwnerRepository.Create(&owner); err != nil {
		if database.IsDuplicateKeyError(err) {
			return echo.NewHTTPError(409, "repo owner already exists")
		}
		return echo.NewHTTPError(500, "could not create repo owner").WithInternal(err)
	}

	c.cacheVersionService.Bump(shared.CacheKindRepoOwner)

	// kick off repository discovery right away. Only supported platforms
	// have a forge client behind them.
	if models.SupportedPlatform(owner.Platform) {
		if _, err := c.dispatcher.Dispatch(ctx.Request().Context(), shared.FetchOwnerReposTask{OwnerID: owner.ID}); err != nil {
			slog.Error("could not dispatch repo discovery for new owner", "ownerID", owner.ID, "err", err)
		}
	}

	return ctx.JSON(201, owner)
}

func (c *RepoOwnerController) Read(ctx shared.Context) error {
	id, err := uuid.Parse(ctx.Param("ownerID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid owner id")
	}

	owner, err := c.repoOwnerRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find repo owner").WithInternal(err)
	}

	return ctx.JSON(200, owner)
}

func (c *RepoOwnerController) List(ctx shared.Context) error {
	page, pageSize := pageParams(ctx.QueryParam("page"), ctx.QueryParam("pageSize"))

	filter := shared.RepoOwnerFilter{
		Platform: ctx.QueryParam("platform"),
		Name:     ctx.QueryParam("name"),
	}

	owners, total, err := c.repoOwnerRepository.List(filter, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(500, "could not list repo owners").WithInternal(err)
	}

	return ctx.JSON(200, newListResponse(owners, total, page, pageSize))
}

func (c *RepoOwnerController) Delete(ctx shared.Context) error {
	id, err := uuid.Parse(ctx.Param("ownerID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid owner id")
	}

	if err := c.repoOwnerRepository.Delete(id); err != nil {
		return echo.NewHTTPError(500, "could not delete repo owner").WithInternal(err)
	}

	c.cacheVersionService.Bump(shared.CacheKindRepoOwner)
	return ctx.NoContent(200)
}
