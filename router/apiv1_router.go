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

package router

import (
	"github.com/dmdhrumilmistry/chitragupta/cmd/chitragupta/api"
	"github.com/dmdhrumilmistry/chitragupta/controllers"
	middleware "github.com/dmdhrumilmistry/chitragupta/middlewares"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(srv api.Server,
	listCache *middleware.ListCache,
	repoOwnerController *controllers.RepoOwnerController,
	repoController *controllers.RepoController,
	secretScanResultController *controllers.SecretScanResultController,
	vulnerabilityController *controllers.VulnerabilityController,
	taskController *controllers.TaskController,
) APIV1Router {
	srv.Echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiV1Router := srv.Echo.Group("/api/v1")
	apiV1Router.GET("/health", health)

	repoOwnerRouter := apiV1Router.Group("/repo-owners")
	repoOwnerRouter.GET("", repoOwnerController.List, listCache.Middleware(shared.CacheKindRepoOwner, "platform", "name"))
	repoOwnerRouter.POST("", repoOwnerController.Create)
	repoOwnerRouter.GET("/:ownerID", repoOwnerController.Read)
	repoOwnerRouter.DELETE("/:ownerID", repoOwnerController.Delete)

	repoRouter := apiV1Router.Group("/repos")
	repoRouter.GET("", repoController.List, listCache.Middleware(shared.CacheKindRepo, "ownerName", "platform", "isPrivate", "isFork"))
	repoRouter.GET("/:repoID", repoController.Read)

	resultRouter := apiV1Router.Group("/secret-scan-results")
	resultRouter.GET("", secretScanResultController.List, listCache.Middleware(shared.CacheKindSecretScanResult, "repoName", "secretType", "isVerified", "isFalsePositive"))
	resultRouter.GET("/:resultID", secretScanResultController.Read)
	resultRouter.PATCH("/:resultID", secretScanResultController.Update)

	vulnRouter := apiV1Router.Group("/vulnerabilities")
	vulnRouter.GET("", vulnerabilityController.List)
	vulnRouter.GET("/:vulnID", vulnerabilityController.Read)

	apiV1Router.POST("/trigger-task", taskController.Trigger)

	return APIV1Router{Group: apiV1Router}
}

func health(c echo.Context) error {
	return c.String(200, "ok")
}
