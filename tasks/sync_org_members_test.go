package tasks_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func namedOrg(name string, platform models.RepoPlatform) models.RepoOwner {
	org := models.RepoOwner{Name: name, Platform: platform, IsOrganization: true}
	org.ID = uuid.New()
	return org
}

func TestSyncOrgMembers(t *testing.T) {
	t.Run("should create members as non-organization owners and trigger their discovery", func(t *testing.T) {
		f := newScanFixture(t)
		f.owners.organizations = []models.RepoOwner{namedOrg("octo-org", models.PlatformGitHub)}
		f.forge.members = map[string][]shared.RemoteUser{
			"octo-org": {{Login: "alice"}, {Login: "bob"}},
		}

		result := f.runner.SyncOrgMembers(context.Background())

		assert.True(t, result.OK)
		assert.Equal(t, []string{"alice", "bob"}, f.owners.findOrCreateCalls)
		assert.Len(t, f.dispatch.dispatched, 2)
		assert.IsType(t, shared.FetchOwnerReposTask{}, f.dispatch.dispatched[0])
		assert.Contains(t, f.caches.bumped, shared.CacheKindRepoOwner)
	})

	t.Run("should not trigger discovery for already known members", func(t *testing.T) {
		f := newScanFixture(t)
		f.owners.organizations = []models.RepoOwner{namedOrg("octo-org", models.PlatformGitHub)}
		known := models.RepoOwner{Name: "alice", Platform: models.PlatformGitHub}
		known.ID = uuid.New()
		f.owners.existing["alice"] = known
		f.forge.members = map[string][]shared.RemoteUser{
			"octo-org": {{Login: "alice"}},
		}

		result := f.runner.SyncOrgMembers(context.Background())

		assert.True(t, result.OK)
		assert.Empty(t, f.dispatch.dispatched)
		assert.Empty(t, f.caches.bumped)
	})

	t.Run("should skip organizations on unsupported platforms", func(t *testing.T) {
		f := newScanFixture(t)
		f.owners.organizations = []models.RepoOwner{namedOrg("legacy-org", models.RepoPlatform("gitlab"))}

		result := f.runner.SyncOrgMembers(context.Background())

		assert.True(t, result.OK)
		assert.Empty(t, f.owners.findOrCreateCalls)
	})

	t.Run("should continue with the next organization when member listing fails", func(t *testing.T) {
		f := newScanFixture(t)
		f.owners.organizations = []models.RepoOwner{
			namedOrg("broken-org", models.PlatformGitHub),
			namedOrg("octo-org", models.PlatformGitHub),
		}
		f.forge.membersErr = map[string]error{"broken-org": fmt.Errorf("forbidden")}
		f.forge.members = map[string][]shared.RemoteUser{
			"octo-org": {{Login: "carol"}},
		}

		result := f.runner.SyncOrgMembers(context.Background())

		assert.True(t, result.OK)
		assert.Equal(t, []string{"carol"}, f.owners.findOrCreateCalls)
	})
}
