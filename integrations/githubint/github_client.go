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

package githubint

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/dmdhrumilmistry/chitragupta/utils"
	"github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
)

// Client talks to GitHub as a GitHub App installation. The installation
// transport handles token caching and renewal; InstallationToken exposes the
// current token for building authenticated clone urls.
type Client struct {
	client    *github.Client
	transport *ghinstallation.Transport
}

var _ shared.ForgeClient = (*Client)(nil)

// NewClient reads GITHUB_APP_ID, GITHUB_APP_INSTALLATION_ID and
// GITHUB_PRIVATE_KEY from the environment. The private key may be a file path
// or the PEM material itself.
func NewClient() (*Client, error) {
	appID, err := strconv.ParseInt(os.Getenv("GITHUB_APP_ID"), 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "GITHUB_APP_ID is not set or not a number")
	}

	installationID, err := strconv.ParseInt(os.Getenv("GITHUB_APP_INSTALLATION_ID"), 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "GITHUB_APP_INSTALLATION_ID is not set or not a number")
	}

	key := os.Getenv("GITHUB_PRIVATE_KEY")
	var itr *ghinstallation.Transport
	if _, statErr := os.Stat(key); statErr == nil {
		itr, err = ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, key)
	} else {
		itr, err = ghinstallation.New(http.DefaultTransport, appID, installationID, []byte(key))
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not create github app transport")
	}

	return &Client{
		client:    github.NewClient(&http.Client{Transport: itr}),
		transport: itr,
	}, nil
}

func (c *Client) ListRepos(ctx context.Context, owner string) ([]shared.RemoteRepo, error) {
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var repos []shared.RemoteRepo
	for {
		page, resp, err := c.client.Repositories.ListByUser(ctx, owner, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "could not list repositories for %s", owner)
		}

		repos = append(repos, utils.Map(page, func(el *github.Repository) shared.RemoteRepo {
			return shared.RemoteRepo{
				CloneURL: el.GetCloneURL(),
				SSHURL:   el.GetSSHURL(),
				Name:     el.GetName(),
				FullName: el.GetFullName(),
				Fork:     el.GetFork(),
				Private:  el.GetPrivate(),
				SizeInKB: el.GetSize(),
			}
		})...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

func (c *Client) ListMembers(ctx context.Context, org string) ([]shared.RemoteUser, error) {
	opts := &github.ListMembersOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var members []shared.RemoteUser
	for {
		page, resp, err := c.client.Organizations.ListMembers(ctx, org, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "could not list members of %s", org)
		}

		members = append(members, utils.Map(page, func(el *github.User) shared.RemoteUser {
			return shared.RemoteUser{Login: el.GetLogin()}
		})...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return members, nil
}

func (c *Client) InstallationToken(ctx context.Context) (string, error) {
	token, err := c.transport.Token(ctx)
	if err != nil {
		return "", errors.Wrap(err, "could not issue installation token")
	}
	return token, nil
}

// LatestCommitSHA resolves the newest commit on the default branch at or
// before the given instant. Used to advance the scan watermark after a
// successful cycle.
func (c *Client) LatestCommitSHA(ctx context.Context, owner, repo string, until time.Time) (string, error) {
	commits, _, err := c.client.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		Until:       until,
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return "", errors.Wrapf(err, "could not list commits for %s/%s", owner, repo)
	}
	if len(commits) == 0 {
		return "", errors.Errorf("no commits found for %s/%s before %s", owner, repo, until)
	}
	return commits[0].GetSHA(), nil
}
