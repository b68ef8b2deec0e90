package shared

import (
	"context"

	"github.com/google/uuid"
)

type TaskName string

const (
	TaskNameFetchOwnerRepos TaskName = "fetch_owner_repos"
	TaskNameScanRepo        TaskName = "scan_repo"
	TaskNameSyncOrgMembers  TaskName = "sync_org_members"
	TaskNameScanAllRepos    TaskName = "scan_all_repos"
	TaskNameSyncUserRepos   TaskName = "sync_user_repos"
)

// Task is the closed set of units of work the queue knows how to execute.
// Keeping the argument shapes on the variants avoids the "unknown task name"
// class of runtime errors a string -> function table would allow.
type Task interface {
	TaskName() TaskName
}

type FetchOwnerReposTask struct {
	OwnerID uuid.UUID `json:"ownerID"`
}

func (FetchOwnerReposTask) TaskName() TaskName { return TaskNameFetchOwnerRepos }

type ScanRepoTask struct {
	RepoID       uuid.UUID `json:"repoID"`
	Concurrency  int       `json:"concurrency"`
	OnlyVerified bool      `json:"onlyVerified"`
}

func (ScanRepoTask) TaskName() TaskName { return TaskNameScanRepo }

type SyncOrgMembersTask struct{}

func (SyncOrgMembersTask) TaskName() TaskName { return TaskNameSyncOrgMembers }

type ScanAllReposTask struct {
	Concurrency  int  `json:"concurrency"`
	OnlyVerified bool `json:"onlyVerified"`
}

func (ScanAllReposTask) TaskName() TaskName { return TaskNameScanAllRepos }

type SyncUserReposTask struct{}

func (SyncUserReposTask) TaskName() TaskName { return TaskNameSyncUserRepos }

// TaskHandle acknowledges a dispatched task. The ID is only usable for
// client-visible acknowledgement - the core never polls task state.
type TaskHandle struct {
	ID uuid.UUID `json:"id"`
}

type TaskDispatcher interface {
	Dispatch(ctx context.Context, task Task) (TaskHandle, error)
}

// TaskResult is the structured outcome of one executed unit of work. Failures
// surface here as reason codes, never as panics - the worker has no enclosing
// handler.
type TaskResult struct {
	OK                  bool   `json:"ok"`
	Reason              string `json:"reason,omitempty"`
	TotalReposTriggered *int   `json:"totalReposTriggered,omitempty"`
	TotalUsersTriggered *int   `json:"totalUsersTriggered,omitempty"`
}

const (
	ReasonOwnerNotFound   = "instance_not_found"
	ReasonRepoNotFound    = "repo_not_found"
	ReasonScanError       = "scan_error"
	ReasonCredentialError = "credential_error"
	ReasonForgeError      = "forge_error"
	ReasonStorageError    = "storage_error"
)

func TaskOK() TaskResult {
	return TaskResult{OK: true}
}

func TaskAborted(reason string) TaskResult {
	return TaskResult{OK: false, Reason: reason}
}
