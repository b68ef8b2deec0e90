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

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/cmd/chitragupta/api"
	"github.com/dmdhrumilmistry/chitragupta/controllers"
	"github.com/dmdhrumilmistry/chitragupta/database"
	"github.com/dmdhrumilmistry/chitragupta/database/repositories"
	"github.com/dmdhrumilmistry/chitragupta/integrations/githubint"
	middleware "github.com/dmdhrumilmistry/chitragupta/middlewares"
	"github.com/dmdhrumilmistry/chitragupta/router"
	"github.com/dmdhrumilmistry/chitragupta/scanner"
	"github.com/dmdhrumilmistry/chitragupta/services"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/dmdhrumilmistry/chitragupta/taskqueue"
	"github.com/dmdhrumilmistry/chitragupta/tasks"
	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	db, err := database.Factory()
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("failed to setup database connection"))
	}

	fx.New(
		fx.Supply(db),
		fx.Provide(api.NewServer),
		repositories.Module,
		services.ServiceModule,
		scanner.Module,
		githubint.Module,
		taskqueue.Module,
		tasks.Module,
		controllers.Module,
		middleware.Module,
		router.RouterModule,

		// routers register their routes as a side effect of construction
		fx.Invoke(func(apiV1Router router.APIV1Router) {}),
		fx.Invoke(taskqueue.StartWorker),
	).Run()
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,
		Debug:       environment == "dev",
	})
	if err != nil {
		slog.Error("could not initialize sentry", "err", err)
	}
}
