package models_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dmdhrumilmistry/chitragupta/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const naturalKeyIndex = "idx_secret_scan_result_natural_key"

// The dedup index contains nullable columns (file_line, committer_email,
// commit_datetime, repo_id). Postgres treats NULLs as distinct by default,
// which would make ON CONFLICT DO NOTHING miss every finding with a NULL key
// column and re-insert it on each scan. The index therefore has to be
// declared NULLS NOT DISTINCT; this pins the schema contract.
func TestSecretScanResultNaturalKeyIndex(t *testing.T) {
	fields := reflect.VisibleFields(reflect.TypeOf(models.SecretScanResult{}))

	var keyed []string
	declaresNullsNotDistinct := false
	for _, field := range fields {
		tag := field.Tag.Get("gorm")
		if !strings.Contains(tag, naturalKeyIndex) {
			continue
		}
		keyed = append(keyed, field.Name)
		if strings.Contains(tag, "option:NULLS NOT DISTINCT") {
			declaresNullsNotDistinct = true
		}
	}

	require.NotEmpty(t, keyed)
	assert.True(t, declaresNullsNotDistinct,
		"natural key index must be NULLS NOT DISTINCT, it has nullable columns")

	nullable := []string{"FileLine", "CommitterEmail", "CommitDatetime", "RepoID"}
	for _, name := range nullable {
		assert.Contains(t, keyed, name)
	}
}
