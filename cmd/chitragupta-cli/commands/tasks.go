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

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type triggerRequest struct {
	Task         string `json:"task"`
	OwnerID      string `json:"ownerID,omitempty"`
	RepoID       string `json:"repoID,omitempty"`
	Concurrency  int    `json:"concurrency,omitempty"`
	OnlyVerified bool   `json:"onlyVerified,omitempty"`
}

// postTrigger sends the trigger request to a running instance and prints the
// acknowledgement.
func postTrigger(apiURL string, req triggerRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "could not marshal trigger request")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(apiURL+"/api/v1/trigger-task", "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "could not reach the api")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "could not read the response")
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trigger rejected with status %d: %s", resp.StatusCode, string(respBody))
	}

	fmt.Println(string(respBody))
	return nil
}

func NewTasksCommand() *cobra.Command {
	tasksCmd := cobra.Command{
		Use:   "tasks",
		Short: "Trigger background tasks on a running instance",
	}

	tasksCmd.PersistentFlags().String("api-url", "http://localhost:8080", "base url of the chitragupta api")

	tasksCmd.AddCommand(newScanRepoCommand())
	tasksCmd.AddCommand(newFetchOwnerReposCommand())
	tasksCmd.AddCommand(newSyncOrgMembersCommand())
	tasksCmd.AddCommand(newScanAllReposCommand())
	tasksCmd.AddCommand(newSyncUserReposCommand())
	return &tasksCmd
}

func newScanRepoCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "scan-repo",
		Short: "Scan a single repository for leaked secrets",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL, _ := cmd.Flags().GetString("api-url")
			repoID, _ := cmd.Flags().GetString("repo-id")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			onlyVerified, _ := cmd.Flags().GetBool("only-verified")

			if repoID == "" {
				return fmt.Errorf("--repo-id is required")
			}

			return postTrigger(apiURL, triggerRequest{
				Task:         string(shared.TaskNameScanRepo),
				RepoID:       repoID,
				Concurrency:  concurrency,
				OnlyVerified: onlyVerified,
			})
		},
	}
	cmd.Flags().String("repo-id", "", "id of the repository to scan")
	cmd.Flags().Int("concurrency", 10, "scanner concurrency")
	cmd.Flags().Bool("only-verified", false, "only report verified secrets")
	return &cmd
}

func newFetchOwnerReposCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "fetch-owner-repos",
		Short: "Discover the repositories of an owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL, _ := cmd.Flags().GetString("api-url")
			ownerID, _ := cmd.Flags().GetString("owner-id")

			if ownerID == "" {
				return fmt.Errorf("--owner-id is required")
			}

			return postTrigger(apiURL, triggerRequest{
				Task:    string(shared.TaskNameFetchOwnerRepos),
				OwnerID: ownerID,
			})
		},
	}
	cmd.Flags().String("owner-id", "", "id of the repo owner")
	return &cmd
}

func newSyncOrgMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-org-members",
		Short: "Sync the members of all tracked organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL, _ := cmd.Flags().GetString("api-url")
			return postTrigger(apiURL, triggerRequest{Task: string(shared.TaskNameSyncOrgMembers)})
		},
	}
}

func newScanAllReposCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "scan-all-repos",
		Short: "Queue a secret scan for every tracked repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL, _ := cmd.Flags().GetString("api-url")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			onlyVerified, _ := cmd.Flags().GetBool("only-verified")

			return postTrigger(apiURL, triggerRequest{
				Task:         string(shared.TaskNameScanAllRepos),
				Concurrency:  concurrency,
				OnlyVerified: onlyVerified,
			})
		},
	}
	cmd.Flags().Int("concurrency", 10, "scanner concurrency")
	cmd.Flags().Bool("only-verified", false, "only report verified secrets")
	return &cmd
}

func newSyncUserReposCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-user-repos",
		Short: "Discover the repositories of all tracked users",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL, _ := cmd.Flags().GetString("api-url")
			return postTrigger(apiURL, triggerRequest{Task: string(shared.TaskNameSyncUserRepos)})
		},
	}
}
