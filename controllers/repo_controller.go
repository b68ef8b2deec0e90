package controllers

import (
	"strconv"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RepoController struct {
	repoRepository shared.RepoRepository
}

func NewRepoController(repoRepository shared.RepoRepository) *RepoController {
	return &RepoController{repoRepository: repoRepository}
}

func (c *RepoController) Read(ctx shared.Context) error {
	id, err := uuid.Parse(ctx.Param("repoID"))
	if err != nil {
		return echo.NewHTTPError(400, "invalid repo id")
	}

	repo, err := c.repoRepository.Read(id)
	if err != nil {
		return echo.NewHTTPError(404, "could not find repo").WithInternal(err)
	}

	return ctx.JSON(200, repo)
}

func (c *RepoController) List(ctx shared.Context) error {
	page, pageSize := pageParams(ctx.QueryParam("page"), ctx.QueryParam("pageSize"))

	filter := shared.RepoFilter{
		OwnerName: ctx.QueryParam("ownerName"),
		Platform:  ctx.QueryParam("platform"),
		IsPrivate: boolQueryParam(ctx, "isPrivate"),
		IsFork:    boolQueryParam(ctx, "isFork"),
	}

	repos, total, err := c.repoRepository.List(filter, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(500, "could not list repos").WithInternal(err)
	}

	return ctx.JSON(200, newListResponse(repos, total, page, pageSize))
}

// boolQueryParam returns nil when the parameter is absent or unparsable, so
// the filter stays a no-op instead of silently matching false.
func boolQueryParam(ctx shared.Context, name string) *bool {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
