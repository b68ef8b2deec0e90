package taskqueue

import (
	"testing"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeTask(t *testing.T) {
	t.Run("scan repo task round trips", func(t *testing.T) {
		original := shared.ScanRepoTask{RepoID: uuid.New(), Concurrency: 4, OnlyVerified: true}

		env, data, err := encodeTask(original)
		require.NoError(t, err)
		assert.Equal(t, shared.TaskNameScanRepo, env.Name)
		assert.NotEqual(t, uuid.Nil, env.ID)

		decodedEnv, task, err := decodeTask(data)
		require.NoError(t, err)
		assert.Equal(t, env.ID, decodedEnv.ID)
		assert.Equal(t, original, task)
	})

	t.Run("fetch owner repos task round trips", func(t *testing.T) {
		original := shared.FetchOwnerReposTask{OwnerID: uuid.New()}

		_, data, err := encodeTask(original)
		require.NoError(t, err)

		_, task, err := decodeTask(data)
		require.NoError(t, err)
		assert.Equal(t, original, task)
	})

	t.Run("parameterless tasks round trip", func(t *testing.T) {
		for _, original := range []shared.Task{shared.SyncOrgMembersTask{}, shared.SyncUserReposTask{}} {
			_, data, err := encodeTask(original)
			require.NoError(t, err)

			_, task, err := decodeTask(data)
			require.NoError(t, err)
			assert.Equal(t, original, task)
		}
	})

	t.Run("unknown task names are rejected", func(t *testing.T) {
		_, _, err := decodeTask([]byte(`{"id":"` + uuid.NewString() + `","name":"drop_all_tables","payload":{}}`))
		assert.ErrorContains(t, err, "unknown task name")
	})

	t.Run("garbage payloads are rejected", func(t *testing.T) {
		_, _, err := decodeTask([]byte("not json"))
		assert.Error(t, err)
	})
}
