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
	"fmt"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TaskController struct {
	dispatcher shared.TaskDispatcher
}

func NewTaskController(dispatcher shared.TaskDispatcher) *TaskController {
	return &TaskController{dispatcher: dispatcher}
}

type triggerTaskRequest struct {
	Task         string     `json:"task" validate:"required"`
	OwnerID      *uuid.UUID `json:"ownerID"`
	RepoID       *uuid.UUID `json:"repoID"`
	Concurrency  int        `json:"concurrency"`
	OnlyVerified bool       `json:"onlyVerified"`
}

type triggerTaskResponse struct {
	TaskID string `json:"taskID"`
	Status string `json:"status"`
}

// defaultScanConcurrency is applied when a trigger request omits the field,
// so a scan never reaches the scanner with --concurrency=0.
const defaultScanConcurrency = 10

func scanConcurrency(requested int) int {
	if requested <= 0 {
		return defaultScanConcurrency
	}
	return requested
}

// buildTask maps a trigger request onto the closed task set. Anything outside
// that set is rejected before it reaches the queue.
func buildTask(req triggerTaskRequest) (shared.Task, error) {
	switch shared.TaskName(req.Task) {
	case shared.TaskNameFetchOwnerRepos:
		if req.OwnerID == nil {
			return nil, fmt.Errorf("task %s requires ownerID", req.Task)
		}
		return shared.FetchOwnerReposTask{OwnerID: *req.OwnerID}, nil
	case shared.TaskNameScanRepo:
		if req.RepoID == nil {
			return nil, fmt.Errorf("task %s requires repoID", req.Task)
		}
		return shared.ScanRepoTask{RepoID: *req.RepoID, Concurrency: scanConcurrency(req.Concurrency), OnlyVerified: req.OnlyVerified}, nil
	case shared.TaskNameSyncOrgMembers:
		return shared.SyncOrgMembersTask{}, nil
	case shared.TaskNameScanAllRepos:
		return shared.ScanAllReposTask{Concurrency: scanConcurrency(req.Concurrency), OnlyVerified: req.OnlyVerified}, nil
	case shared.TaskNameSyncUserRepos:
		return shared.SyncUserReposTask{}, nil
	default:
		return nil, fmt.Errorf("unknown task %q", req.Task)
	}
}

func (c *TaskController) Trigger(ctx shared.Context) error {
	var req triggerTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	task, err := buildTask(req)
	if err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	handle, err := c.dispatcher.Dispatch(ctx.Request().Context(), task)
	if err != nil {
		return echo.NewHTTPError(500, "could not dispatch task").WithInternal(err)
	}

	return ctx.JSON(200, triggerTaskResponse{
		TaskID: handle.ID.String(),
		Status: "dispatched",
	})
}
