package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const findingLine = `{"SourceMetadata":{"Data":{"Git":{"commit":"77a2f3d","file":"config/settings.py","email":"dev@example.com","repository":"https://github.com/octo-org/website","timestamp":"2023-03-04 12:00:00 +0000","line":42}}},"SourceID":1,"DetectorName":"AWS","Verified":true,"Raw":"AKIAEXAMPLE","RawV2":"AKIAEXAMPLE:secret"}`

func TestIsFindingLine(t *testing.T) {
	assert.True(t, IsFindingLine(findingLine))
	assert.False(t, IsFindingLine(""))
	assert.False(t, IsFindingLine("   "))
	assert.False(t, IsFindingLine(`{"level":"info","msg":"scanning repo"}`))
	assert.False(t, IsFindingLine("2023-03-04T12:00:00Z info scanning 12 commits"))
}

func TestParseFinding(t *testing.T) {
	t.Run("should extract the git context from a finding line", func(t *testing.T) {
		finding, err := ParseFinding(findingLine)
		require.NoError(t, err)

		assert.Equal(t, "config/settings.py", finding.FilePath)
		require.NotNil(t, finding.FileLine)
		assert.Equal(t, 42, *finding.FileLine)
		assert.Equal(t, "dev@example.com", finding.CommitterEmail)
		assert.Equal(t, "AWS", finding.DetectorName)
		assert.True(t, finding.IsVerified)
		assert.Equal(t, "AKIAEXAMPLE", finding.Raw)
		assert.Equal(t, "AKIAEXAMPLE:secret", finding.RawV2)
		require.NotNil(t, finding.CommitDatetime)
		assert.Equal(t, time.Date(2023, 3, 4, 12, 0, 0, 0, time.UTC).Unix(), finding.CommitDatetime.Unix())
		assert.NotEmpty(t, finding.AdditionalInfo)
	})

	t.Run("should accept rfc3339 timestamps from newer tool versions", func(t *testing.T) {
		finding, err := ParseFinding(`{"SourceMetadata":{"Data":{"Git":{"file":"a.txt","timestamp":"2024-06-01T08:30:00Z"}}},"DetectorName":"Github"}`)
		require.NoError(t, err)
		require.NotNil(t, finding.CommitDatetime)
		assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC).Unix(), finding.CommitDatetime.Unix())
	})

	t.Run("should fail on malformed json", func(t *testing.T) {
		_, err := ParseFinding(`{"SourceMetadata": not json`)
		assert.Error(t, err)
	})

	t.Run("should fail on an unparsable timestamp", func(t *testing.T) {
		_, err := ParseFinding(`{"SourceMetadata":{"Data":{"Git":{"timestamp":"yesterday"}}}}`)
		assert.Error(t, err)
	})

	t.Run("should tolerate missing git metadata", func(t *testing.T) {
		finding, err := ParseFinding(`{"SourceMetadata":{},"DetectorName":"Slack","Verified":false}`)
		require.NoError(t, err)
		assert.Equal(t, "", finding.FilePath)
		assert.Nil(t, finding.FileLine)
		assert.Nil(t, finding.CommitDatetime)
		assert.Equal(t, "Slack", finding.DetectorName)
	})
}
