// Copyright (C) 2025 Dhrumil Mistry
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
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package taskqueue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/database"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// tasksChannel is the single NOTIFY channel all task envelopes travel over.
const tasksChannel = "chitragupta_tasks"

// envelope is the wire form of one dispatched task. The worker routes on Name
// and unmarshals Payload into the matching variant, so an unknown name can
// only come from a version skew between dispatcher and worker, never from a
// caller.
type envelope struct {
	ID        uuid.UUID       `json:"id"`
	Name      shared.TaskName `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

func encodeTask(task shared.Task) (envelope, []byte, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return envelope{}, nil, errors.Wrap(err, "could not marshal task payload")
	}

	env := envelope{
		ID:        uuid.New(),
		Name:      task.TaskName(),
		Payload:   payload,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(env)
	if err != nil {
		return envelope{}, nil, errors.Wrap(err, "could not marshal task envelope")
	}
	return env, data, nil
}

func decodeTask(data []byte) (envelope, shared.Task, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, nil, errors.Wrap(err, "could not unmarshal task envelope")
	}

	var task shared.Task
	switch env.Name {
	case shared.TaskNameFetchOwnerRepos:
		var t shared.FetchOwnerReposTask
		if err := json.Unmarshal(env.Payload, &t); err != nil {
			return env, nil, errors.Wrap(err, "could not unmarshal fetch owner repos payload")
		}
		task = t
	case shared.TaskNameScanRepo:
		var t shared.ScanRepoTask
		if err := json.Unmarshal(env.Payload, &t); err != nil {
			return env, nil, errors.Wrap(err, "could not unmarshal scan repo payload")
		}
		task = t
	case shared.TaskNameSyncOrgMembers:
		task = shared.SyncOrgMembersTask{}
	case shared.TaskNameScanAllRepos:
		var t shared.ScanAllReposTask
		if err := json.Unmarshal(env.Payload, &t); err != nil {
			return env, nil, errors.Wrap(err, "could not unmarshal scan all repos payload")
		}
		task = t
	case shared.TaskNameSyncUserRepos:
		task = shared.SyncUserReposTask{}
	default:
		return env, nil, errors.Errorf("unknown task name %q", env.Name)
	}

	return env, task, nil
}

// NewPool opens the pgx pool used for LISTEN/NOTIFY. Kept separate from the
// gorm connection: a LISTEN connection is held open for the lifetime of the
// worker.
func NewPool() (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, database.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "could not create pgx pool")
	}
	return pool, nil
}
